// Package styles defines the visual vocabulary for swimmer plot SVGs.
//
// A [Style] turns geometry primitives (bars, markers, brackets, axis,
// grid) into SVG fragments. Two styles ship built in:
//
//   - [Simple]: flat fills, no defs. The default.
//   - [Clinical]: Simple plus a bar gradient and drop shadow for
//     publication figures.
//
// Colors come from a [Theme]. The built-in palette maps the common
// response codes (CR, PR, SD, PD) to fixed colors; any code outside the
// palette renders in the fallback gray rather than failing. A TOML file
// loaded with [LoadTheme] overrides individual fields and merges extra
// category colors into the palette:
//
//	bar_fill = "#dce8f0"
//
//	[categories]
//	MR = "#7cb342"
//
// # Custom Styles
//
// Implement [Style] to take full control of the output. Embedding
// [Simple] and overriding single methods is the cheapest route; see
// [Clinical] for the pattern.
package styles
