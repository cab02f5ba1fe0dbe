// Package sink serializes swimmer plot geometry into output formats.
//
// SVG is the native format; PNG and PDF go through rsvg-convert, and
// JSON emits the geometry itself for downstream tooling.
//
// # Options
//
// [RenderSVG] accepts functional options:
//
//   - [WithStyle]: visual style ([styles.Simple] or [styles.Clinical])
//   - [WithTitle]: centered title above the plot
//   - [WithLegend]: response-category legend under the axis
//
// Output is deterministic for equal inputs, so artifacts can be cached
// and compared by content hash.
//
// [styles.Simple]: github.com/linker268/Swimmer-plot/pkg/render/swim/styles.Simple
// [styles.Clinical]: github.com/linker268/Swimmer-plot/pkg/render/swim/styles.Clinical
package sink
