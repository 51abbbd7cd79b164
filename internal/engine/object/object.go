// Package object defines the wireframe objects placed in a scene: a vertex
// list in model space, faces indexing into it, and a model-to-world
// transform.
package object

import (
	"errors"
	"fmt"

	"github.com/Faultbox/wireview/pkg/formats"
	"github.com/Faultbox/wireview/pkg/math"
)

// Object errors.
var (
	ErrFaceIndexOutOfRange = errors.New("face references a vertex that does not exist")
	ErrNoVertices          = errors.New("object has no vertices")
)

// Colour is an RGB triplet.
type Colour struct {
	R, G, B uint8
}

// DefaultColour matches the original red wireframe default.
var DefaultColour = Colour{R: 255}

// Object is a wireframe model. Vertices are model-space points; each face
// is an ordered loop of vertex indices. The invariant that every face
// index is in range is established at construction and preserved by
// AddFaces.
type Object struct {
	Colour Colour

	vertices  []math.Vec3
	faces     [][]int
	transform Transform
}

// New creates an object from explicit vertex and face lists.
func New(vertices []math.Vec3, faces [][]int) (*Object, error) {
	if len(vertices) == 0 {
		return nil, ErrNoVertices
	}
	o := &Object{
		Colour:    DefaultColour,
		vertices:  append([]math.Vec3(nil), vertices...),
		transform: IdentityTransform(),
	}
	if err := o.AddFaces(faces); err != nil {
		return nil, err
	}
	return o, nil
}

// FromMesh creates an object from a parsed mesh file.
func FromMesh(mesh *formats.Mesh) (*Object, error) {
	vertices := make([]math.Vec3, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		vertices[i] = math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	}
	faces := make([][]int, len(mesh.Faces))
	for i, f := range mesh.Faces {
		faces[i] = []int{f[0], f[1], f[2]}
	}
	return New(vertices, faces)
}

// AddFaces validates and appends faces.
func (o *Object) AddFaces(faces [][]int) error {
	for fi, face := range faces {
		for _, idx := range face {
			if idx < 0 || idx >= len(o.vertices) {
				return fmt.Errorf("face %d: %w (index %d, %d vertices)",
					fi, ErrFaceIndexOutOfRange, idx, len(o.vertices))
			}
		}
		o.faces = append(o.faces, append([]int(nil), face...))
	}
	return nil
}

// Vertices returns the model-space vertices.
func (o *Object) Vertices() []math.Vec3 {
	return o.vertices
}

// Faces returns the face index lists.
func (o *Object) Faces() [][]int {
	return o.faces
}

// Transform returns the current model-to-world transform.
func (o *Object) Transform() Transform {
	return o.transform
}

// SetTransform replaces the model-to-world transform.
func (o *Object) SetTransform(t Transform) {
	o.transform = t
}

// SetPose sets the world position and orientation, keeping scale.
func (o *Object) SetPose(position math.Vec3, rotation math.Quat) {
	o.transform.Translation = position
	o.transform.Rotation = rotation.Normalize()
}

// SetScale sets the uniform scale about the object's origin.
func (o *Object) SetScale(s float32) {
	o.transform.Scale = s
}

// Centroid returns the mean of the model-space vertices.
func (o *Object) Centroid() math.Vec3 {
	var sum math.Vec3
	for _, v := range o.vertices {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float32(len(o.vertices)))
}

// Recenter shifts the model-space vertices so the centroid becomes the
// local origin. Rotation and scale then act about the object's middle.
func (o *Object) Recenter() {
	c := o.Centroid()
	for i := range o.vertices {
		o.vertices[i] = o.vertices[i].Sub(c)
	}
}

// WorldVertices returns the vertices mapped to world space by the current
// transform. The result is freshly allocated each call.
func (o *Object) WorldVertices() []math.Vec3 {
	out := make([]math.Vec3, len(o.vertices))
	for i, v := range o.vertices {
		out[i] = o.transform.Apply(v)
	}
	return out
}
