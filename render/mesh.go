package render

import (
	"fmt"
	"io"
	"math"

	"github.com/soypat/roller"
	"gonum.org/v1/gonum/spatial/r3"
)

// degenerateTol is the squared cross product magnitude under which a
// triangle is considered collinear and gets a zero normal.
const degenerateTol = 1e-12

// Triangle is an indexed mesh triangle: three indices into the mesh vertex
// slice plus the outward unit normal. The normal is the zero vector for
// degenerate (collinear) triangles.
type Triangle struct {
	V [3]int
	N r3.Vec
}

// Mesh is a triangulated roller surface. It is an open cylindrical shell:
// the angular seam is closed by index reuse but the axial ends are left
// uncapped, leaving the roller interior open.
type Mesh struct {
	// Vertices in row-major grid order, index = i*angularSteps + j.
	Vertices  []r3.Vec
	Triangles []Triangle
	// Degenerate counts triangles that got a zero normal. Nonzero counts
	// point at malformed parameters but do not abort an export.
	Degenerate int
}

// GeometryError reports a grid cell whose displacement consumed the whole
// base radius. Emitting the mesh anyway would self-intersect, so the build
// aborts instead of clamping.
type GeometryError struct {
	I, J   int     // offending grid cell
	Radius float64 // resulting non-positive radius
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("render: non-positive radius %g at grid cell (%d, %d)", e.Radius, e.I, e.J)
}

// Build wraps the displacement field around a cylinder of the given base
// radius and triangulates it. Vertices are laid out row-major; each grid
// quad becomes two triangles and the final angular column connects back to
// column zero so the mesh is seamless around the circumference. The field
// may come from the pattern generators or any other source of well-formed
// displacements, such as an imported heightmap.
func Build(f *roller.Field, radius float64) (*Mesh, error) {
	grid := f.Grid()
	axial, angular := f.Dims()
	m := &Mesh{
		Vertices:  make([]r3.Vec, 0, axial*angular),
		Triangles: make([]Triangle, 0, 2*(axial-1)*angular),
	}
	for i := 0; i < axial; i++ {
		z := grid.Z(i)
		for j := 0; j < angular; j++ {
			r := radius - f.At(i, j)
			if r <= 0 {
				return nil, &GeometryError{I: i, J: j, Radius: r}
			}
			theta := grid.Theta(j)
			m.Vertices = append(m.Vertices, r3.Vec{
				X: r * math.Cos(theta),
				Y: r * math.Sin(theta),
				Z: z,
			})
		}
	}
	for i := 0; i < axial-1; i++ {
		for j := 0; j < angular; j++ {
			// The last column's jn wraps to 0, reusing the seam vertices.
			jn := (j + 1) % angular
			v1 := i*angular + j
			v2 := i*angular + jn
			v3 := (i+1)*angular + j
			v4 := (i+1)*angular + jn
			m.addTriangle(v1, v2, v3)
			m.addTriangle(v2, v4, v3)
		}
	}
	return m, nil
}

// addTriangle appends the triangle with its facet normal. The winding is
// chosen so normals point radially away from the cylinder axis.
func (m *Mesh) addTriangle(a, b, c int) {
	e1 := r3.Sub(m.Vertices[b], m.Vertices[a])
	e2 := r3.Sub(m.Vertices[c], m.Vertices[a])
	n := r3.Cross(e1, e2)
	norm := r3.Norm(n)
	if norm <= degenerateTol {
		m.Degenerate++
		n = r3.Vec{}
	} else {
		n = r3.Scale(1/norm, n)
	}
	m.Triangles = append(m.Triangles, Triangle{V: [3]int{a, b, c}, N: n})
}

// Facet resolves triangle t of the mesh into its vertices and normal.
func (m *Mesh) Facet(t int) Facet {
	tri := m.Triangles[t]
	return Facet{
		N: tri.N,
		V: [3]r3.Vec{m.Vertices[tri.V[0]], m.Vertices[tri.V[1]], m.Vertices[tri.V[2]]},
	}
}

// Renderer returns a streaming view over the mesh triangles for CreateSTL.
func (m *Mesh) Renderer() Renderer {
	return &meshRenderer{mesh: m}
}

type meshRenderer struct {
	mesh *Mesh
	next int
}

func (mr *meshRenderer) ReadTriangles(dst []Facet) (int, error) {
	if mr.next >= len(mr.mesh.Triangles) {
		return 0, io.EOF
	}
	n := 0
	for n < len(dst) && mr.next < len(mr.mesh.Triangles) {
		dst[n] = mr.mesh.Facet(mr.next)
		mr.next++
		n++
	}
	return n, nil
}
