package preview

import (
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/roller/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Scale down images relative to Full HD resolution.
	fhdScaler     = 0.4
	width, height = int(1920. * fhdScaler), int(1080. * fhdScaler) // output width and height in pixels
)

// View configures the snapshot camera.
type View struct {
	// what position (point) to look at
	Lookat r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eyepos r3.Vec
	Far    float64
	Near   float64
}

// DefaultView is an isometric view suited to a roller lying along z.
func DefaultView() View {
	return View{
		Up:     r3.Vec{Z: 1},
		Eyepos: d3.Elem(2.4),
		Near:   1,
		Far:    10,
	}
}

// Snapshot renders the STL file at stlName to a shaded PNG at outputname.
func Snapshot(stlName, outputname string, view View) error {
	mesh, err := fauxgl.LoadSTL(stlName)
	if err != nil {
		return err
	}
	const (
		scale = 1  // optional supersampling
		fovy  = 30 // vertical field of view in degrees
	)

	var (
		far    = view.Far
		near   = view.Near
		eye    = fauxgl.V(view.Eyepos.X, view.Eyepos.Y, view.Eyepos.Z) // camera position
		center = fauxgl.V(view.Lookat.X, view.Lookat.Y, view.Lookat.Z) // view center position
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)             // up vector
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()                  // light direction
		color  = fauxgl.HexColor("#B9773D")                            // terracotta
	)

	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	// create a rendering context
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	// create transformation matrix and light direction
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, near, far)
	// use builtin phong shader
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	// render
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(uint(width), uint(height), image, resize.Bilinear)
	return fauxgl.SavePNG(outputname, image)
}
