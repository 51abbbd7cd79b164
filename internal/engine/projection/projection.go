// Package projection implements the software transform pipeline from
// world space to screen pixels.
//
// Camera space follows the module-wide convention: right-handed, +Y up,
// camera looking down -Z. The depth of a camera-space point is -z. Points
// at depth <= near are clipped (depth exactly at the near plane counts as
// clipped), and points at or beyond far are discarded. Screen coordinates
// are pixels with the origin at the top-left and Y growing downward.
package projection

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/wireview/pkg/math"
)

// Viewport is the drawable size in pixels.
type Viewport struct {
	Width, Height int
}

// Aspect returns width/height.
func (v Viewport) Aspect() float32 {
	if v.Height == 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// Pipeline projects camera-space points onto a viewport with a perspective
// divide. It is pure math: no state beyond the parameters, no side
// effects.
type Pipeline struct {
	FOV      float32 // vertical field of view, radians
	Near     float32
	Far      float32
	Viewport Viewport

	focal float32 // 1 / tan(FOV/2)
}

// New builds a pipeline.
func New(fov, near, far float32, vp Viewport) *Pipeline {
	return &Pipeline{
		FOV:      fov,
		Near:     near,
		Far:      far,
		Viewport: vp,
		focal:    1 / math32.Tan(fov/2),
	}
}

// Resize updates the viewport.
func (p *Pipeline) Resize(width, height int) {
	p.Viewport = Viewport{Width: width, Height: height}
}

// ToCamera maps a world-space point into camera space using a view matrix
// (the inverse of the camera pose: translate by -position, rotate by the
// inverse orientation).
func (p *Pipeline) ToCamera(view math.Mat4, world math.Vec3) math.Vec3 {
	return view.TransformPoint(world)
}

// Depth returns the camera-space depth of a point.
func Depth(cam math.Vec3) float32 {
	return -cam.Z
}

// ProjectPoint maps a camera-space point to pixel coordinates. The second
// return is false when the point is clipped: behind or at the near plane,
// at or beyond the far plane, or numerically degenerate. A non-finite
// result is treated as off-screen, never as an error.
func (p *Pipeline) ProjectPoint(cam math.Vec3) (math.Vec2, bool) {
	if !cam.IsFinite() {
		return math.Vec2{}, false
	}
	depth := Depth(cam)
	if depth <= p.Near || depth >= p.Far {
		return math.Vec2{}, false
	}
	return p.toScreen(cam, depth)
}

// toScreen performs the perspective divide and viewport mapping. depth
// must be positive.
func (p *Pipeline) toScreen(cam math.Vec3, depth float32) (math.Vec2, bool) {
	ndcX := cam.X * p.focal / (p.Viewport.Aspect() * depth)
	ndcY := cam.Y * p.focal / depth

	pt := math.Vec2{
		X: (ndcX + 1) * 0.5 * float32(p.Viewport.Width),
		Y: (1 - ndcY) * 0.5 * float32(p.Viewport.Height),
	}
	if !pt.IsFinite() {
		return math.Vec2{}, false
	}
	return pt, true
}

// Unproject inverts ProjectPoint: given a pixel position and a
// camera-space depth, it recovers the camera-space point. Valid for any
// depth > near.
func (p *Pipeline) Unproject(pt math.Vec2, depth float32) math.Vec3 {
	ndcX := 2*pt.X/float32(p.Viewport.Width) - 1
	ndcY := 1 - 2*pt.Y/float32(p.Viewport.Height)

	return math.Vec3{
		X: ndcX * p.Viewport.Aspect() * depth / p.focal,
		Y: ndcY * depth / p.focal,
		Z: -depth,
	}
}

// ProjectFace clips a camera-space polygon against the near plane and
// projects the surviving loop. It returns the screen loop, the squared
// distance of the clipped polygon's centroid from the eye (for painter
// ordering), and whether anything remains to draw.
func (p *Pipeline) ProjectFace(cam []math.Vec3) ([]math.Vec2, float32, bool) {
	clipped := clipNear(cam, p.Near)
	if len(clipped) < 3 {
		return nil, 0, false
	}

	pts := make([]math.Vec2, 0, len(clipped))
	var centroid math.Vec3
	for _, v := range clipped {
		// Clipping guarantees depth >= near > 0, so the divide is safe;
		// the finite check still guards degenerate input coordinates.
		pt, ok := p.toScreen(v, Depth(v))
		if !ok {
			return nil, 0, false
		}
		pts = append(pts, pt)
		centroid = centroid.Add(v)
	}
	centroid = centroid.Scale(1 / float32(len(clipped)))

	return pts, centroid.Dot(centroid), true
}

// clipNear clips a camera-space polygon against the near plane
// (Sutherland-Hodgman against depth > near). Vertices exactly on the
// plane are outside; edges crossing the plane gain an intersection vertex
// sitting on it.
func clipNear(verts []math.Vec3, near float32) []math.Vec3 {
	if len(verts) == 0 {
		return nil
	}

	out := make([]math.Vec3, 0, len(verts)+2)
	for i, cur := range verts {
		next := verts[(i+1)%len(verts)]
		curIn := Depth(cur) > near
		nextIn := Depth(next) > near

		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			out = append(out, intersectNear(cur, next, near))
		}
	}
	return out
}

// intersectNear returns the point where the edge a-b crosses the near
// plane.
func intersectNear(a, b math.Vec3, near float32) math.Vec3 {
	da, db := Depth(a), Depth(b)
	t := (near - da) / (db - da)
	return a.Lerp(b, t)
}
