package object

import "github.com/Faultbox/wireview/pkg/math"

// Transform is a rigid model-to-world mapping with an optional uniform
// scale. Rotation is kept as a quaternion and renormalized after every
// composition, so the rotation part of Matrix() stays orthonormal under
// repeated incremental updates.
type Transform struct {
	Rotation    math.Quat
	Translation math.Vec3
	Scale       float32
}

// IdentityTransform returns the identity mapping.
func IdentityTransform() Transform {
	return Transform{Rotation: math.QuatIdentity(), Scale: 1}
}

// Matrix returns the model-to-world matrix (translate * rotate * scale).
func (t Transform) Matrix() math.Mat4 {
	m := t.Rotation.ToMat4()
	if t.Scale != 1 && t.Scale != 0 {
		m = m.Mul(math.ScaleUniform(t.Scale))
	}
	m[12] = t.Translation.X
	m[13] = t.Translation.Y
	m[14] = t.Translation.Z
	return m
}

// Apply maps a model-space point to world space.
func (t Transform) Apply(v math.Vec3) math.Vec3 {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	return t.Rotation.RotateVec3(v.Scale(s)).Add(t.Translation)
}

// Rotated composes an additional rotation (applied after the current one)
// and renormalizes.
func (t Transform) Rotated(q math.Quat) Transform {
	t.Rotation = q.Mul(t.Rotation).Normalize()
	return t
}

// Translated offsets the translation component.
func (t Transform) Translated(d math.Vec3) Transform {
	t.Translation = t.Translation.Add(d)
	return t
}

// IsFinite reports whether every component is finite.
func (t Transform) IsFinite() bool {
	return t.Rotation.IsFinite() && t.Translation.IsFinite() && math.IsFinite(t.Scale)
}
