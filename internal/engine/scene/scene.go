// Package scene owns the set of objects being viewed and drives their
// animation. A Scene is mutated only by the single frame loop: there is
// no locking and no concurrent access.
package scene

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/wireview/internal/engine/motion"
	"github.com/Faultbox/wireview/internal/engine/object"
	"github.com/Faultbox/wireview/internal/engine/projection"
	"github.com/Faultbox/wireview/pkg/math"
)

// Scene errors.
var (
	ErrObjectNotFound  = errors.New("object not found")
	ErrDuplicateObject = errors.New("object id already registered")
	ErrMotionNotFound  = errors.New("object has no motion")
)

// Scene is the object registry plus per-object motion descriptors.
type Scene struct {
	objects map[string]*object.Object
	motions map[string]motion.Motion
	order   []string // insertion order, for deterministic iteration
	log     *zap.Logger
}

// New creates an empty scene. log may be nil.
func New(log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scene{
		objects: make(map[string]*object.Object),
		motions: make(map[string]motion.Motion),
		log:     log,
	}
}

// AddObject registers an object under an id.
func (s *Scene) AddObject(id string, obj *object.Object) error {
	if _, exists := s.objects[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateObject, id)
	}
	s.objects[id] = obj
	s.order = append(s.order, id)
	return nil
}

// RemoveObject removes an object and any motion attached to it.
func (s *Scene) RemoveObject(id string) error {
	if _, exists := s.objects[id]; !exists {
		return fmt.Errorf("%w: %q", ErrObjectNotFound, id)
	}
	delete(s.objects, id)
	delete(s.motions, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Object looks up an object by id.
func (s *Scene) Object(id string) (*object.Object, error) {
	obj, exists := s.objects[id]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrObjectNotFound, id)
	}
	return obj, nil
}

// Objects returns the registered ids in insertion order.
func (s *Scene) Objects() []string {
	return append([]string(nil), s.order...)
}

// SetMotion attaches a motion descriptor to an object, replacing any
// existing one. Motions do not stack.
func (s *Scene) SetMotion(id string, m motion.Motion) error {
	if _, exists := s.objects[id]; !exists {
		return fmt.Errorf("%w: %q", ErrObjectNotFound, id)
	}
	s.motions[id] = m
	return nil
}

// RemoveMotion detaches an object's motion.
func (s *Scene) RemoveMotion(id string) error {
	if _, exists := s.motions[id]; !exists {
		return fmt.Errorf("%w: %q", ErrMotionNotFound, id)
	}
	delete(s.motions, id)
	return nil
}

// Fault records an object whose motion failed during a tick.
type Fault struct {
	ID  string
	Err error
}

// Step advances a single object's motion to time t.
func (s *Scene) Step(id string, t float32) error {
	obj, exists := s.objects[id]
	if !exists {
		return fmt.Errorf("%w: %q", ErrObjectNotFound, id)
	}
	m, exists := s.motions[id]
	if !exists {
		return fmt.Errorf("%w: %q", ErrMotionNotFound, id)
	}
	pose, err := m.At(t)
	if err != nil {
		return err
	}
	obj.SetPose(pose.Position, pose.Rotation)
	return nil
}

// Advance steps every attached motion to time t. An object whose motion
// fails keeps its previous transform for this tick; the failures are
// logged and returned for diagnostics, and never abort the frame.
// Advancing twice to the same t leaves identical transforms.
func (s *Scene) Advance(t float32) []Fault {
	var faults []Fault
	for _, id := range s.order {
		m, exists := s.motions[id]
		if !exists {
			continue
		}
		pose, err := m.At(t)
		if err != nil {
			s.log.Debug("motion fault, freezing object",
				zap.String("object", id),
				zap.Float32("t", t),
				zap.Error(err),
			)
			faults = append(faults, Fault{ID: id, Err: err})
			continue
		}
		s.objects[id].SetPose(pose.Position, pose.Rotation)
	}
	return faults
}

// RenderFace is a projected polygon ready for a drawing surface.
type RenderFace struct {
	Points []math.Vec2
	Colour object.Colour

	depthSq float32
}

// Render projects every object through the pipeline with the given view
// matrix and returns the visible faces sorted far-to-near (painter's
// order). Degenerate vertices and faces behind the near plane are simply
// absent from the result.
func (s *Scene) Render(p *projection.Pipeline, view math.Mat4) []RenderFace {
	var out []RenderFace

	for _, id := range s.order {
		obj := s.objects[id]
		if !obj.Transform().IsFinite() {
			s.log.Debug("skipping object with non-finite transform", zap.String("object", id))
			continue
		}

		world := obj.WorldVertices()
		cam := make([]math.Vec3, len(world))
		for i, w := range world {
			cam[i] = p.ToCamera(view, w)
		}

		for _, face := range obj.Faces() {
			faceCam := make([]math.Vec3, len(face))
			for i, idx := range face {
				faceCam[i] = cam[idx]
			}
			pts, depthSq, ok := p.ProjectFace(faceCam)
			if !ok {
				continue
			}
			out = append(out, RenderFace{Points: pts, Colour: obj.Colour, depthSq: depthSq})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].depthSq > out[j].depthSq
	})
	return out
}

// Surface is the drawing collaborator: a sink for projected 2D polygons
// in pixel coordinates.
type Surface interface {
	FillPolygon(points []math.Vec2, colour object.Colour)
	StrokePolygon(points []math.Vec2, colour object.Colour)
}

var edgeColour = object.Colour{} // black outlines

// Draw renders the scene and hands the faces to the surface, filled and
// outlined, farthest first.
func (s *Scene) Draw(p *projection.Pipeline, view math.Mat4, surface Surface) {
	for _, face := range s.Render(p, view) {
		surface.FillPolygon(face.Points, face.Colour)
		surface.StrokePolygon(face.Points, edgeColour)
	}
}
