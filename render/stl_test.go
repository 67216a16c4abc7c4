package render

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/roller"
	"gonum.org/v1/gonum/spatial/r3"
)

// smallMesh builds a low-resolution zero-displacement cylinder shell.
func smallMesh(t *testing.T) *Mesh {
	t.Helper()
	f := roller.NewField(roller.Grid{AxialSteps: 4, AngularSteps: 6, Width: 100})
	m, err := Build(f, roller.DefaultSpecs().Radius())
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSTLLayout(t *testing.T) {
	m := smallMesh(t)
	const header = "Roller:W200-RW40-D4-N10-T6-S3-Spiral"
	var b bytes.Buffer
	if err := WriteSTL(&b, m, header); err != nil {
		t.Fatal(err)
	}
	data := b.Bytes()
	nt := len(m.Triangles)
	if want := 84 + 50*nt; len(data) != want {
		t.Fatalf("stream is %d bytes, want %d", len(data), want)
	}
	if got := binary.LittleEndian.Uint32(data[80:]); got != uint32(nt) {
		t.Errorf("count field %d, want %d", got, nt)
	}
	// Header is null padded to exactly 80 bytes.
	for i := len(header); i < 80; i++ {
		if data[i] != 0 {
			t.Fatalf("header byte %d not null padded", i)
		}
	}
	// Attribute byte count is always zero.
	for i := 0; i < nt; i++ {
		off := 84 + 50*i + 48
		if data[off] != 0 || data[off+1] != 0 {
			t.Fatalf("triangle %d attribute bytes nonzero", i)
		}
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	m := smallMesh(t)
	long := "Roller:" + strings.Repeat("W200-RW40-", 12) // 127 bytes
	cases := []struct {
		header string
		want   string
	}{
		{"Roller:W200-RW40-D4-N10-T6-S3-Spiral", "Roller:W200-RW40-D4-N10-T6-S3-Spiral"},
		{long, long[:80]},
		{"", ""},
	}
	for _, c := range cases {
		var b bytes.Buffer
		if err := WriteSTL(&b, m, c.header); err != nil {
			t.Fatal(err)
		}
		got, facets, err := readBinarySTL(&b)
		if err != nil && !errors.Is(err, errCalculatedNormalMismatch) {
			t.Fatal(err)
		}
		if got != c.want {
			t.Errorf("header round trip got %q, want %q", got, c.want)
		}
		if len(facets) != len(m.Triangles) {
			t.Errorf("read %d facets, want %d", len(facets), len(m.Triangles))
		}
	}
}

func TestEmptyMeshEncodingError(t *testing.T) {
	var b bytes.Buffer
	err := WriteSTL(&b, &Mesh{}, "empty")
	var eerr EncodingError
	if !errors.As(err, &eerr) {
		t.Fatalf("got %v, want EncodingError", err)
	}
	if b.Len() != 0 {
		t.Error("partial output written for empty mesh")
	}
}

func TestSTLCreateWriteRead(t *testing.T) {
	m := smallMesh(t)
	const header = "Roller:W100-RW40-D4-N10-T6-S3-Spiral"
	path := filepath.Join(t.TempDir(), "roller.stl")
	if err := CreateSTL(path, m.Renderer(), header); err != nil {
		t.Fatal(err)
	}
	bfile, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := WriteSTL(&b, m, header); err != nil {
		t.Fatal(err)
	}
	if b.Len() != len(bfile) {
		t.Fatal("WriteSTL and CreateSTL output length mismatch")
	}
	if b.String() != string(bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}
}

func TestReadBackVertices(t *testing.T) {
	m := smallMesh(t)
	var b bytes.Buffer
	if err := WriteSTL(&b, m, "x"); err != nil {
		t.Fatal(err)
	}
	_, facets, err := readBinarySTL(&b)
	if err != nil && !errors.Is(err, errCalculatedNormalMismatch) {
		t.Fatal(err)
	}
	for i, f := range facets {
		want := m.Facet(i)
		for v := 0; v < 3; v++ {
			got := f.V[v]
			if absf(got.X-want.V[v].X) > 1e-4 ||
				absf(got.Y-want.V[v].Y) > 1e-4 ||
				absf(got.Z-want.V[v].Z) > 1e-4 {
				t.Fatalf("facet %d vertex %d read back %v, want %v", i, v, got, want.V[v])
			}
		}
	}
}

// Collinear vertices have no defined normal; the builder substitutes a
// zero vector and counts the triangle instead of dividing by zero.
func TestDegenerateTriangleZeroNormal(t *testing.T) {
	m := &Mesh{Vertices: []r3.Vec{{}, {X: 1}, {X: 2}}}
	m.addTriangle(0, 1, 2)
	if m.Degenerate != 1 {
		t.Fatalf("degenerate count %d, want 1", m.Degenerate)
	}
	if m.Triangles[0].N != (r3.Vec{}) {
		t.Errorf("degenerate normal %v, want zero vector", m.Triangles[0].N)
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
