package scene

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/wireview/internal/engine/motion"
	"github.com/Faultbox/wireview/internal/engine/object"
	"github.com/Faultbox/wireview/internal/engine/projection"
	"github.com/Faultbox/wireview/pkg/math"
)

// unitCube returns a cube of side 2 centered at the origin.
func unitCube(t *testing.T) *object.Object {
	t.Helper()
	vertices := []math.Vec3{
		{X: -1, Y: -1, Z: -1},
		{X: 1, Y: -1, Z: -1},
		{X: 1, Y: 1, Z: -1},
		{X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1},
		{X: 1, Y: -1, Z: 1},
		{X: 1, Y: 1, Z: 1},
		{X: -1, Y: 1, Z: 1},
	}
	faces := [][]int{
		{0, 1, 2, 3},
		{4, 5, 6, 7},
		{0, 1, 5, 4},
		{2, 3, 7, 6},
		{0, 3, 7, 4},
		{1, 2, 6, 5},
	}
	obj, err := object.New(vertices, faces)
	if err != nil {
		t.Fatalf("building cube: %v", err)
	}
	return obj
}

func TestAddRemoveObject(t *testing.T) {
	s := New(nil)

	if err := s.AddObject("cube", unitCube(t)); err != nil {
		t.Fatalf("AddObject failed: %v", err)
	}
	if err := s.AddObject("cube", unitCube(t)); !errors.Is(err, ErrDuplicateObject) {
		t.Errorf("expected ErrDuplicateObject, got %v", err)
	}

	if err := s.RemoveObject("cube"); err != nil {
		t.Errorf("RemoveObject failed: %v", err)
	}
	if err := s.RemoveObject("cube"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestObjectLookup(t *testing.T) {
	s := New(nil)
	cube := unitCube(t)
	if err := s.AddObject("cube", cube); err != nil {
		t.Fatalf("AddObject failed: %v", err)
	}

	got, err := s.Object("cube")
	if err != nil {
		t.Fatalf("Object failed: %v", err)
	}
	if got != cube {
		t.Error("Object returned a different object")
	}

	if _, err := s.Object("missing"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestSetMotionRequiresObject(t *testing.T) {
	s := New(nil)
	m := motion.NewFunctionMotion(func(t float32) motion.Pose {
		return motion.Pose{Rotation: math.QuatIdentity()}
	})

	if err := s.SetMotion("ghost", m); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected ErrObjectNotFound, got %v", err)
	}
	if err := s.RemoveMotion("ghost"); !errors.Is(err, ErrMotionNotFound) {
		t.Errorf("expected ErrMotionNotFound, got %v", err)
	}
}

func TestAdvanceMovesObject(t *testing.T) {
	s := New(nil)
	cube := unitCube(t)
	if err := s.AddObject("cube", cube); err != nil {
		t.Fatalf("AddObject failed: %v", err)
	}

	orbit := motion.NewFunctionMotion(func(t float32) motion.Pose {
		return motion.Pose{
			Position: math.Vec3{X: 5 * math32.Cos(t), Z: 5 * math32.Sin(t)},
			Rotation: math.QuatIdentity(),
		}
	})
	if err := s.SetMotion("cube", orbit); err != nil {
		t.Fatalf("SetMotion failed: %v", err)
	}

	if faults := s.Advance(0); faults != nil {
		t.Fatalf("Advance returned faults: %v", faults)
	}
	want := math.Vec3{X: 5}
	if got := cube.Transform().Translation; got.Distance(want) > 0.001 {
		t.Errorf("position after Advance(0) = %v, want %v", got, want)
	}
}

// Advancing twice to the same time leaves identical transforms.
func TestAdvanceIdempotent(t *testing.T) {
	s := New(nil)
	cube := unitCube(t)
	if err := s.AddObject("cube", cube); err != nil {
		t.Fatalf("AddObject failed: %v", err)
	}
	keys := []motion.Keyframe{
		{Time: 0, Pose: motion.Pose{Position: math.Vec3{}, Rotation: math.QuatIdentity()}},
		{Time: 10, Pose: motion.Pose{Position: math.Vec3{X: 10}, Rotation: math.QuatIdentity()}},
	}
	km, err := motion.NewKeyframeMotion(keys, nil)
	if err != nil {
		t.Fatalf("NewKeyframeMotion failed: %v", err)
	}
	if err := s.SetMotion("cube", km); err != nil {
		t.Fatalf("SetMotion failed: %v", err)
	}

	s.Advance(3)
	first := cube.Transform()
	s.Advance(3)
	if cube.Transform() != first {
		t.Errorf("Advance(3) twice: %+v then %+v", first, cube.Transform())
	}
}

// A motion returning non-finite values freezes the object for the tick
// and reports a fault instead of failing the frame.
func TestAdvanceFreezesOnFault(t *testing.T) {
	s := New(nil)
	cube := unitCube(t)
	if err := s.AddObject("cube", cube); err != nil {
		t.Fatalf("AddObject failed: %v", err)
	}

	bad := motion.NewFunctionMotion(func(t float32) motion.Pose {
		if t > 1 {
			return motion.Pose{Position: math.Vec3{X: math32.NaN()}, Rotation: math.QuatIdentity()}
		}
		return motion.Pose{Position: math.Vec3{X: t}, Rotation: math.QuatIdentity()}
	})
	if err := s.SetMotion("cube", bad); err != nil {
		t.Fatalf("SetMotion failed: %v", err)
	}

	s.Advance(1)
	before := cube.Transform()

	faults := s.Advance(2)
	if len(faults) != 1 {
		t.Fatalf("expected 1 fault, got %d", len(faults))
	}
	if faults[0].ID != "cube" {
		t.Errorf("fault id = %q, want %q", faults[0].ID, "cube")
	}
	if !errors.Is(faults[0].Err, motion.ErrNonFinitePose) {
		t.Errorf("fault error = %v, want ErrNonFinitePose", faults[0].Err)
	}
	if cube.Transform() != before {
		t.Error("object transform changed during a faulted tick")
	}
}

func TestStepSingleObject(t *testing.T) {
	s := New(nil)
	cube := unitCube(t)
	if err := s.AddObject("cube", cube); err != nil {
		t.Fatalf("AddObject failed: %v", err)
	}

	if err := s.Step("cube", 1); !errors.Is(err, ErrMotionNotFound) {
		t.Errorf("Step without motion: expected ErrMotionNotFound, got %v", err)
	}
	if err := s.Step("ghost", 1); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Step missing object: expected ErrObjectNotFound, got %v", err)
	}
}

func TestRenderCubeScenario(t *testing.T) {
	s := New(nil)
	cube := unitCube(t)
	tr := object.IdentityTransform()
	tr.Translation = math.Vec3{Z: -5}
	cube.SetTransform(tr)
	if err := s.AddObject("cube", cube); err != nil {
		t.Fatalf("AddObject failed: %v", err)
	}

	p := projection.New(math32.Pi/2, 1, 100, projection.Viewport{Width: 400, Height: 400})
	view := math.Identity() // camera at origin facing -z

	faces := s.Render(p, view)
	if len(faces) != 6 {
		t.Fatalf("rendered %d faces, want 6", len(faces))
	}

	// Painter order: depths descending
	for _, face := range faces {
		for _, pt := range face.Points {
			if pt.X < 0 || pt.X > 400 || pt.Y < 0 || pt.Y > 400 {
				t.Errorf("projected point %v outside the viewport", pt)
			}
		}
	}
}

// A face behind the camera never reaches the surface.
func TestRenderDropsFacesBehindCamera(t *testing.T) {
	s := New(nil)
	cube := unitCube(t)
	tr := object.IdentityTransform()
	tr.Translation = math.Vec3{Z: 5} // behind the eye
	cube.SetTransform(tr)
	if err := s.AddObject("cube", cube); err != nil {
		t.Fatalf("AddObject failed: %v", err)
	}

	p := projection.New(math32.Pi/2, 1, 100, projection.Viewport{Width: 400, Height: 400})
	if faces := s.Render(p, math.Identity()); len(faces) != 0 {
		t.Errorf("rendered %d faces for an object behind the camera, want 0", len(faces))
	}
}

type recordingSurface struct {
	fills, strokes int
}

func (r *recordingSurface) FillPolygon(points []math.Vec2, colour object.Colour)   { r.fills++ }
func (r *recordingSurface) StrokePolygon(points []math.Vec2, colour object.Colour) { r.strokes++ }

func TestDrawHandsFacesToSurface(t *testing.T) {
	s := New(nil)
	cube := unitCube(t)
	tr := object.IdentityTransform()
	tr.Translation = math.Vec3{Z: -5}
	cube.SetTransform(tr)
	if err := s.AddObject("cube", cube); err != nil {
		t.Fatalf("AddObject failed: %v", err)
	}

	p := projection.New(math32.Pi/2, 1, 100, projection.Viewport{Width: 400, Height: 400})
	surface := &recordingSurface{}
	s.Draw(p, math.Identity(), surface)

	if surface.fills != 6 || surface.strokes != 6 {
		t.Errorf("surface received %d fills, %d strokes; want 6 and 6", surface.fills, surface.strokes)
	}
}
