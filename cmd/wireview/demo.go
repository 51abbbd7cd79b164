package main

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/Faultbox/wireview/internal/engine/motion"
	"github.com/Faultbox/wireview/internal/engine/object"
	"github.com/Faultbox/wireview/internal/engine/scene"
	"github.com/Faultbox/wireview/pkg/formats"
	"github.com/Faultbox/wireview/pkg/math"
)

// startPose is where the camera begins for a demo scene.
type startPose struct {
	Position math.Vec3
	Yaw      float32
	Pitch    float32
}

var cubeVertices = []math.Vec3{
	{X: 0, Y: 0, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 1, Z: 1},
	{X: 1, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 1},
	{X: 1, Y: 1, Z: 0},
	{X: 1, Y: 1, Z: 1},
}

var cubeFaces = [][]int{
	{0, 2, 6, 4},
	{1, 3, 7, 5},
	{0, 1, 5, 4},
	{2, 3, 7, 6},
	{0, 1, 3, 2},
	{4, 5, 7, 6},
}

func newCube(colour object.Colour, scale float32) (*object.Object, error) {
	cube, err := object.New(cubeVertices, cubeFaces)
	if err != nil {
		return nil, err
	}
	cube.Colour = colour
	cube.Recenter()
	cube.SetScale(scale)
	return cube, nil
}

// xzCircle orbits the origin in the xz plane at the given radius, with
// frequency in revolutions per second.
func xzCircle(t, radius, frequency float32) math.Vec3 {
	angle := 2 * math32.Pi * frequency * t
	return math.Vec3{
		X: radius * math32.Cos(angle),
		Z: radius * math32.Sin(angle),
	}
}

// orbitScene builds five cubes: a large stationary one at the origin, two
// orbiting it, and two more orbiting one of the orbiters.
func orbitScene(log *zap.Logger) (*scene.Scene, startPose, error) {
	sc := scene.New(log)

	cubes := []struct {
		id     string
		colour object.Colour
		scale  float32
		path   func(t float32) math.Vec3
	}{
		{"cube1", object.Colour{R: 255, G: 255, B: 255}, 10, nil},
		{"cube2", object.Colour{G: 255}, 1, func(t float32) math.Vec3 {
			return xzCircle(t, 15, 0.1)
		}},
		{"cube3", object.Colour{R: 255}, 0.5, func(t float32) math.Vec3 {
			center := xzCircle(t, 15, 0.1)
			rel := xzCircle(t, 3, 1)
			return math.Vec3{X: center.X + rel.X, Y: rel.Y, Z: center.Z - rel.Z}
		}},
		{"cube4", object.Colour{B: 255}, 2, func(t float32) math.Vec3 {
			p := xzCircle(t, 35, 0.05)
			p.Z = -p.Z
			return p
		}},
		{"cube5", object.Colour{R: 255, G: 255}, 1, func(t float32) math.Vec3 {
			center := xzCircle(t, 35, 0.05)
			center.Z = -center.Z
			return center.Add(xzCircle(t, 10, 0.15))
		}},
	}

	for _, c := range cubes {
		cube, err := newCube(c.colour, c.scale)
		if err != nil {
			return nil, startPose{}, fmt.Errorf("building %s: %w", c.id, err)
		}
		if err := sc.AddObject(c.id, cube); err != nil {
			return nil, startPose{}, err
		}
		if c.path == nil {
			continue
		}
		path := c.path
		m := motion.NewFunctionMotion(func(t float32) motion.Pose {
			return motion.Pose{Position: path(t), Rotation: math.QuatIdentity()}
		})
		if err := sc.SetMotion(c.id, m); err != nil {
			return nil, startPose{}, err
		}
	}

	return sc, startPose{
		Position: math.Vec3{Y: 30, Z: 45},
		Pitch:    -0.55,
	}, nil
}

// keyframeScene builds a cube turning through keyframed orientations and a
// second cube tweening between two poses.
func keyframeScene(log *zap.Logger) (*scene.Scene, startPose, error) {
	sc := scene.New(log)

	spinner, err := newCube(object.Colour{R: 255, G: 128}, 2)
	if err != nil {
		return nil, startPose{}, err
	}
	if err := sc.AddObject("spinner", spinner); err != nil {
		return nil, startPose{}, err
	}

	spinnerPos := math.Vec3{X: -3}
	keys := []motion.Keyframe{
		{Time: 0, Pose: motion.Pose{Position: spinnerPos, Rotation: math.QuatIdentity()}},
		{Time: 2, Pose: motion.Pose{Position: spinnerPos, Rotation: math.QuatFromEuler(math32.Pi/2, 0, 0)}},
		{Time: 4, Pose: motion.Pose{Position: spinnerPos, Rotation: math.QuatFromEuler(math32.Pi, 0, 0)}},
		{Time: 6, Pose: motion.Pose{Position: spinnerPos, Rotation: math.QuatFromEuler(math32.Pi, math32.Pi/4, 0)}},
		{Time: 8, Pose: motion.Pose{Position: spinnerPos, Rotation: math.QuatIdentity()}},
	}
	km, err := motion.NewKeyframeMotion(keys, ease.InOutQuad)
	if err != nil {
		return nil, startPose{}, err
	}
	if err := sc.SetMotion("spinner", km); err != nil {
		return nil, startPose{}, err
	}

	riser, err := newCube(object.Colour{G: 128, B: 255}, 1.5)
	if err != nil {
		return nil, startPose{}, err
	}
	if err := sc.AddObject("riser", riser); err != nil {
		return nil, startPose{}, err
	}

	tween := motion.NewTweenMotion(
		motion.Pose{Position: math.Vec3{X: 3, Y: -2}, Rotation: math.QuatIdentity()},
		motion.Pose{Position: math.Vec3{X: 3, Y: 4}, Rotation: math.QuatFromEuler(math32.Pi, 0, 0)},
		6,
		ease.InOutCubic,
	)
	if err := sc.SetMotion("riser", tween); err != nil {
		return nil, startPose{}, err
	}

	return sc, startPose{
		Position: math.Vec3{Y: 1, Z: 14},
	}, nil
}

// meshScene loads an STL file and spins it slowly about the vertical axis.
func meshScene(path string, log *zap.Logger) (*scene.Scene, startPose, error) {
	mesh, err := formats.LoadSTL(path)
	if err != nil {
		return nil, startPose{}, fmt.Errorf("loading mesh: %w", err)
	}

	obj, err := object.FromMesh(mesh)
	if err != nil {
		return nil, startPose{}, err
	}
	obj.Colour = object.Colour{R: 200, G: 200, B: 200}
	obj.Recenter()

	sc := scene.New(log)
	if err := sc.AddObject("mesh", obj); err != nil {
		return nil, startPose{}, err
	}

	spin := motion.NewFunctionMotion(func(t float32) motion.Pose {
		return motion.Pose{Rotation: math.QuatFromEuler(0.4*t, 0, 0)}
	})
	if err := sc.SetMotion("mesh", spin); err != nil {
		return nil, startPose{}, err
	}

	// Back the camera off proportionally to the model size.
	var extent float32
	for _, v := range obj.Vertices() {
		if l := v.Length(); l > extent {
			extent = l
		}
	}
	if extent == 0 {
		extent = 1
	}

	return sc, startPose{
		Position: math.Vec3{Z: extent * 3},
	}, nil
}
