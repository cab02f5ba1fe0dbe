package sink

import "github.com/linker268/Swimmer-plot/pkg/plot"

// RenderJSON serializes the geometry itself as the artifact: indented,
// field order fixed by the struct, so equal geometry yields equal bytes.
func RenderJSON(g plot.Geometry) ([]byte, error) {
	return plot.MarshalGeometry(g)
}
