package render

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// EncodingError reports an STL serialization failure, i.e. an empty
// triangle list, which downstream slicers reject.
type EncodingError string

func (e EncodingError) Error() string { return "stl: " + string(e) }

// CreateSTL writes the triangles streamed by a Renderer to an STL file at
// path, embedding header in the 80-byte file header.
func CreateSTL(path string, r Renderer, header string) error {
	return createSTL(path, r, header)
}

// WriteSTL writes the mesh to w in binary STL format with the given header
// string. Headers longer than 80 bytes are truncated; shorter ones are
// null-padded to exactly 80.
func WriteSTL(w io.Writer, m *Mesh, header string) error {
	if len(m.Triangles) == 0 {
		return EncodingError("empty triangle slice")
	}
	h := stlHeader{
		Header: makeHeader(header),
		Count:  uint32(len(m.Triangles)), // size of stl triangles is 50
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}
	var d stlTriangle
	for t := range m.Triangles {
		var b [50]byte
		d.fromFacet(m.Facet(t))
		d.put(b[:])
		_, err := io.Copy(w, bytes.NewReader(b[:]))
		if err != nil {
			return err
		}
	}
	return nil
}

// stlHeader defines the STL file header.
type stlHeader struct {
	Header [80]uint8 // Parameter summary, null padded.
	Count  uint32    // Number of triangles
}

// makeHeader truncates or null-pads s to the fixed 80-byte header budget.
func makeHeader(s string) (h [80]uint8) {
	copy(h[:], s)
	return h
}

const trianglesInBuffer = 1 << 10

type stlReader struct {
	r   Renderer
	buf [trianglesInBuffer]Facet
}

func (w *stlReader) Read(b []byte) (int, error) {
	const stlTriangleSize = 50
	ntMax := min(len(b)/stlTriangleSize, len(w.buf))

	if ntMax == 0 {
		return 0, errors.New("stlReader requires at least 50 bytes to write a single triangle")
	}

	var (
		err error
		it  int // Number of triangles written to byte buffer
		nt  int // number of triangles read during ReadTriangles
		d   stlTriangle
	)

	for it < ntMax && err == nil {
		// remaining space in byte buffer for triangles and prevent overflow.
		remaining := len(b)/stlTriangleSize - it
		nt, err = w.r.ReadTriangles(w.buf[:min(ntMax, remaining)])
		if nt > ntMax {
			panic("bug: ReadTriangles read more triangles than available in buffer")
		}
		if nt*stlTriangleSize > len(b[it*stlTriangleSize:]) {
			panic("bug: buffer overflow")
		}
		for _, facet := range w.buf[:nt] {
			d.fromFacet(facet)
			d.put(b[it*stlTriangleSize:])
			it++
		}
	}
	return it * stlTriangleSize, err
}

func createSTL(path string, r Renderer, header string) error {
	const sizeOfSTLHeader = 84
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	// Write the triangle records first, then seek back for the header once
	// the count is known.
	_, err = file.Seek(sizeOfSTLHeader, 0)
	if err != nil {
		return err
	}
	rd := &stlReader{
		r: r,
	}
	n, err := io.CopyBuffer(file, rd, make([]byte, 50*trianglesInBuffer))
	if err != nil {
		return err
	}
	if n == 0 {
		return EncodingError("empty triangle slice")
	}
	_, err = file.Seek(0, 0)
	if err != nil {
		return err
	}
	h := stlHeader{
		Header: makeHeader(header),
		Count:  uint32(n / 50), // size of stl triangles is 50
	}
	return binary.Write(file, binary.LittleEndian, &h)
}

func min(a, b int) int {
	if a <= b {
		return a
	}
	return b
}

// readBinarySTL decodes a binary STL stream. The returned header has its
// trailing null padding stripped. Used by round-trip tests and the preview
// tooling's sanity checks.
func readBinarySTL(r io.Reader) (header string, output []Facet, readErr error) {
	var h stlHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return "", nil, errors.New("encountered EOF while reading STL header")
		}
		return "", nil, errors.New("STL header read failed: " + err.Error())
	}
	header = strings.TrimRight(string(h.Header[:]), "\x00")
	if h.Count == 0 {
		return header, nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf            [50]byte
		d              stlTriangle
		i              int
		normMismatches int
	)
	defer func() {
		if readErr != nil && !errors.Is(readErr, errCalculatedNormalMismatch) {
			readErr = fmt.Errorf("%d/%d STL triangles read: %w", i+1, h.Count, readErr)
		}
	}()
	for i = 0; i < int(h.Count); i++ {
		var n int
		for n < 50 {
			nr, err := r.Read(buf[n:])
			if err != nil {
				return header, nil, err
			}
			n += nr
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			if errors.Is(err, errCalculatedNormalMismatch) {
				normMismatches++
				if normMismatches > 10_000 {
					// This may be valid output, so we return the triangles.
					return header, output, fmt.Errorf("got too many normal vector mismatches (%d)", normMismatches)
				}
				readErr = err
			} else {
				return header, nil, err
			}
		}
		output = append(output, d.toFacet())
	}
	// NormalMismatch error validation may be returned.
	// For high resolution models this error may be incorrectly returned.
	return header, output, readErr
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func (t *stlTriangle) fromFacet(f Facet) {
	t.Normal[0] = float32(f.N.X)
	t.Normal[1] = float32(f.N.Y)
	t.Normal[2] = float32(f.N.Z)
	t.Vertex1[0] = float32(f.V[0].X)
	t.Vertex1[1] = float32(f.V[0].Y)
	t.Vertex1[2] = float32(f.V[0].Z)
	t.Vertex2[0] = float32(f.V[1].X)
	t.Vertex2[1] = float32(f.V[1].Y)
	t.Vertex2[2] = float32(f.V[1].Z)
	t.Vertex3[0] = float32(f.V[2].X)
	t.Vertex3[1] = float32(f.V[2].Y)
	t.Vertex3[2] = float32(f.V[2].Z)
}

func (t stlTriangle) put(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to marshal stlTriangle")
	}

	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// no attributes supported yet.
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

var errCalculatedNormalMismatch = errors.New("triangle normal not approximately equal to calculated normal from vertices. Ignore this error if model is OK")

func (t stlTriangle) validate() error {
	const epsilon = 1e-12
	const normTol = 5e-2
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if t.degenerate(epsilon) {
		return errors.New("triangle is degenerate")
	}
	calcNormal := t.normalFromVertices()
	calcNormalNeg := [3]float32{-calcNormal[0], -calcNormal[1], -calcNormal[2]}
	if !equalWithin3F32(calcNormal, t.Normal, normTol) && !equalWithin3F32(calcNormalNeg, t.Normal, normTol) {
		return errCalculatedNormalMismatch // sometimes may fail
	}
	return nil
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func (t stlTriangle) normalFromVertices() [3]float32 {
	v1 := r3.Scale(10, r3From3F32(t.Vertex1))
	v2 := r3.Scale(10, r3From3F32(t.Vertex2))
	v3 := r3.Scale(10, r3From3F32(t.Vertex3))
	e1 := v2.Sub(v1)
	e2 := v3.Sub(v1)
	n := r3.Unit(r3.Cross(e1, e2))
	n32 := [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
	return n32
}

// degenerate returns true if the triangle is degenerate.
func (t stlTriangle) degenerate(tol float32) bool {
	// check for identical vertices.
	return equalWithin3F32(t.Vertex1, t.Vertex2, tol) ||
		equalWithin3F32(t.Vertex2, t.Vertex3, tol) ||
		equalWithin3F32(t.Vertex3, t.Vertex1, tol)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}

func (d stlTriangle) toFacet() Facet {
	return Facet{
		N: r3From3F32(d.Normal),
		V: [3]r3.Vec{
			r3From3F32(d.Vertex1),
			r3From3F32(d.Vertex2),
			r3From3F32(d.Vertex3),
		},
	}
}
