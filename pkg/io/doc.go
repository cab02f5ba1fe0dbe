// Package io handles file-based interchange between pipeline stages:
// patients.json between parse and layout, and artifact files for the
// render outputs. Geometry files live in [plot] since the geometry type
// owns its own serialization.
//
// [plot]: github.com/linker268/Swimmer-plot/pkg/plot
package io
