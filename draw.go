package ui

import (
	"image"
	"image/color"
	"image/color/palette"
	"log"
	"math"

	"github.com/Yeicor/assembly-ui/internal"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/fogleman/fauxgl"
)

const (
	gridLineWidth        = 0.02
	smoothNormalsRadians = math.Pi / 3
)

// rasterizer draws a scene on the CPU. It owns the tessellated meshes of the attached parts (the equivalent of
// GPU buffers), which are created on the first frame that needs them and dropped when the parts are released.
type rasterizer struct {
	meshCells  int
	background color.RGBA
	getBBColor func(idx int) color.Color

	lastContext *fauxgl.Context
	meshes      map[*internal.Part]*fauxgl.Mesh
	gridLines   *fauxgl.Mesh
	gridCenter  *fauxgl.Mesh
}

func newRasterizer(meshCells int, background color.RGBA) *rasterizer {
	return &rasterizer{
		meshCells:  meshCells,
		background: background,
		getBBColor: func(idx int) color.Color {
			return palette.WebSafe[((idx + 1) % len(palette.WebSafe))]
		},
		meshes: map[*internal.Part]*fauxgl.Mesh{},
	}
}

// reset prepares the drawing context for a frame of the given size, rebuilding it only when needed.
func (rz *rasterizer) reset(size image.Point) *fauxgl.Context {
	if rz.lastContext == nil || rz.lastContext.Width != size.X || rz.lastContext.Height != size.Y {
		rz.lastContext = fauxgl.NewContext(size.X, size.Y)
	} else {
		rz.lastContext.ClearDepthBuffer()
	}
	rz.lastContext.ClearColorBufferWith(fauxgl.MakeColor(rz.background))
	return rz.lastContext
}

// draw renders the scene through the camera. The returned image is owned by the rasterizer until the next call.
func (rz *rasterizer) draw(sc *scene, cam *Camera, state *internal.ViewState, size image.Point) *image.NRGBA {
	ctx := rz.reset(size)
	matrix := cam.Matrix()

	rz.drawGrid(ctx, sc.grid, matrix)

	if sc.active != nil {
		rig := newRigShader(matrix, sc.lights)
		for _, part := range sc.active.Parts {
			if part.Released() {
				continue
			}
			mesh := rz.mesh(part)
			if state.ColorMode == 0 {
				rig.object = fauxgl.MakeColor(part.Color())
				ctx.Shader = rig
				ctx.Wireframe = false
			} else {
				ctx.Shader = &normalShader{matrix}
				ctx.Wireframe = state.ColorMode == 2
			}
			ctx.DrawMesh(mesh)
		}
		if state.DrawBbs {
			for i, part := range sc.active.Parts {
				rz.drawBoundingBox(ctx, part.BoundingBox(), matrix, rz.getBBColor(i))
			}
		}
	}

	return ctx.Image().(*image.NRGBA)
}

func (rz *rasterizer) drawGrid(ctx *fauxgl.Context, grid Grid, matrix fauxgl.Matrix) {
	if rz.gridLines == nil {
		rz.gridLines, rz.gridCenter = gridMeshes(grid)
	}
	ctx.Wireframe = false
	ctx.Shader = fauxgl.NewSolidColorShader(matrix, fauxgl.MakeColor(grid.LineColor))
	ctx.DrawMesh(rz.gridLines)
	ctx.Shader = fauxgl.NewSolidColorShader(matrix, fauxgl.MakeColor(grid.CenterColor))
	ctx.DrawMesh(rz.gridCenter)
}

func (rz *rasterizer) drawBoundingBox(ctx *fauxgl.Context, bb sdf.Box3, matrix fauxgl.Matrix, c color.Color) {
	mesh := fauxgl.NewCubeOutlineForBox(fauxgl.Box{Min: toFauxglVector(bb.Min), Max: toFauxglVector(bb.Max)})
	ctx.Shader = fauxgl.NewSolidColorShader(matrix, fauxgl.MakeColor(c))
	ctx.Wireframe = true
	ctx.DrawMesh(mesh)
}

// mesh returns the cached tessellation of a part, building it on first use.
func (rz *rasterizer) mesh(part *internal.Part) *fauxgl.Mesh {
	if m, ok := rz.meshes[part]; ok {
		return m
	}
	var triangles []*fauxgl.Triangle
	triChan := make(chan []*render.Triangle3)
	go func() {
		render.NewMarchingCubesUniform(rz.meshCells).Render(part.SDF(), triChan)
		close(triChan)
	}()
	for tris := range triChan {
		for _, tri := range tris {
			triangles = append(triangles, convertTriangle(tri))
		}
	}
	m := fauxgl.NewTriangleMesh(triangles)
	m.SmoothNormalsThreshold(smoothNormalsRadians)
	rz.meshes[part] = m
	return m
}

// release drops the meshes of the given parts.
func (rz *rasterizer) release(parts []*internal.Part) {
	for _, p := range parts {
		delete(rz.meshes, p)
	}
}

// dispose drops every owned resource. The rasterizer can't be used afterwards.
func (rz *rasterizer) dispose() {
	if n := len(rz.meshes); n > 0 {
		log.Println("[Viewer] Releasing", n, "part meshes")
	}
	rz.meshes = nil
	rz.gridLines, rz.gridCenter = nil, nil
	rz.lastContext = nil
}

func convertTriangle(tri *render.Triangle3) *fauxgl.Triangle {
	normal := toFauxglVector(tri.Normal())
	return &fauxgl.Triangle{
		V1: fauxgl.Vertex{Position: toFauxglVector(tri.V[0]), Normal: normal, Color: fauxgl.Gray(1)},
		V2: fauxgl.Vertex{Position: toFauxglVector(tri.V[1]), Normal: normal, Color: fauxgl.Gray(1)},
		V3: fauxgl.Vertex{Position: toFauxglVector(tri.V[2]), Normal: normal, Color: fauxgl.Gray(1)},
	}
}

// gridMeshes builds the grid as thin horizontal quads: the regular lines and the two center lines.
func gridMeshes(grid Grid) (lines, center *fauxgl.Mesh) {
	var lineTris, centerTris []*fauxgl.Triangle
	half := grid.Size / 2
	step := grid.Size / float64(grid.Divisions)
	for i := 0; i <= grid.Divisions; i++ {
		at := -half + float64(i)*step
		alongX := flatQuad(grid.Y, -half, at-gridLineWidth/2, half, at+gridLineWidth/2)
		alongZ := flatQuad(grid.Y, at-gridLineWidth/2, -half, at+gridLineWidth/2, half)
		if 2*i == grid.Divisions {
			centerTris = append(centerTris, alongX...)
			centerTris = append(centerTris, alongZ...)
		} else {
			lineTris = append(lineTris, alongX...)
			lineTris = append(lineTris, alongZ...)
		}
	}
	return fauxgl.NewTriangleMesh(lineTris), fauxgl.NewTriangleMesh(centerTris)
}

// flatQuad is the rectangle [x0, x1] x [z0, z1] at height y, facing up.
func flatQuad(y, x0, z0, x1, z1 float64) []*fauxgl.Triangle {
	up := fauxgl.Vector{Y: 1}
	v := func(x, z float64) fauxgl.Vertex {
		return fauxgl.Vertex{Position: fauxgl.Vector{X: x, Y: y, Z: z}, Normal: up, Color: fauxgl.Gray(1)}
	}
	return []*fauxgl.Triangle{
		{V1: v(x0, z0), V2: v(x0, z1), V3: v(x1, z1)},
		{V1: v(x0, z0), V2: v(x1, z1), V3: v(x1, z0)},
	}
}

// rigShader lights a part with the scene's ambient, directional and point lights (no projected shadows).
type rigShader struct {
	matrix     fauxgl.Matrix
	ambient    fauxgl.Color
	sunDir     fauxgl.Vector // Towards the light
	sun        fauxgl.Color
	pointPos   fauxgl.Vector
	point      fauxgl.Color
	pointRange float64
	object     fauxgl.Color
}

func newRigShader(matrix fauxgl.Matrix, lights []Light) *rigShader {
	s := &rigShader{matrix: matrix}
	scaled := func(l Light) fauxgl.Color {
		c := fauxgl.MakeColor(l.Color)
		return fauxgl.Color{R: c.R * l.Intensity, G: c.G * l.Intensity, B: c.B * l.Intensity, A: 1}
	}
	for _, l := range lights {
		switch l.Kind {
		case LightAmbient:
			s.ambient = scaled(l)
		case LightDirectional:
			s.sun = scaled(l)
			s.sunDir = toFauxglVector(l.Position).Normalize()
		case LightPoint:
			s.point = scaled(l)
			s.pointPos = toFauxglVector(l.Position)
			s.pointRange = l.Distance
		}
	}
	return s
}

func (s *rigShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = s.matrix.MulPositionW(v.Position)
	return v
}

func (s *rigShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	n := v.Normal.Normalize()
	r, g, b := s.ambient.R, s.ambient.G, s.ambient.B
	if d := n.Dot(s.sunDir); d > 0 {
		r, g, b = r+s.sun.R*d, g+s.sun.G*d, b+s.sun.B*d
	}
	toPoint := s.pointPos.Sub(v.Position)
	if dist := toPoint.Length(); dist > 0 && (s.pointRange == 0 || dist < s.pointRange) {
		falloff := 1.
		if s.pointRange > 0 {
			falloff = (1 - dist/s.pointRange) * (1 - dist/s.pointRange)
		}
		if d := n.Dot(toPoint.MulScalar(1/dist)) * falloff; d > 0 {
			r, g, b = r+s.point.R*d, g+s.point.G*d, b+s.point.B*d
		}
	}
	return fauxgl.Color{
		R: math.Min(1, s.object.R*r),
		G: math.Min(1, s.object.G*g),
		B: math.Min(1, s.object.B*b),
		A: 1,
	}
}

// normalShader colors fragments by the absolute value of their normal.
type normalShader struct {
	Matrix fauxgl.Matrix
}

func (shader *normalShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = shader.Matrix.MulPositionW(v.Position)
	return v
}

func (shader *normalShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	n := v.Normal.Normalize()
	return fauxgl.MakeColor(color.RGBA{
		R: uint8(math.Abs(n.X) * 255),
		G: uint8(math.Abs(n.Y) * 255),
		B: uint8(math.Abs(n.Z) * 255),
		A: 255,
	})
}
