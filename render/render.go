// Package render turns a roller displacement field into a seam-correct
// triangle mesh wrapped around the base cylinder and serializes it as
// binary STL.
package render

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Facet is a fully resolved mesh triangle: the outward unit normal followed
// by its three vertices, matching the STL record layout.
type Facet struct {
	N r3.Vec
	V [3]r3.Vec
}

// Renderer streams mesh facets. ReadTriangles fills t with up to len(t)
// facets and returns io.EOF once the mesh is exhausted.
type Renderer interface {
	ReadTriangles(t []Facet) (int, error)
}
