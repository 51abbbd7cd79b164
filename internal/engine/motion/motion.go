// Package motion defines animation descriptors: a pose as a function of
// time. A descriptor is either keyframe-based (interpolated samples),
// function-based (arbitrary scripted motion), or a one-shot tween.
package motion

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Faultbox/wireview/pkg/math"
)

// Motion errors.
var (
	ErrNoKeyframes        = errors.New("motion has no keyframes")
	ErrNonIncreasingTimes = errors.New("keyframe times must be strictly increasing")
	ErrNonFinitePose      = errors.New("motion produced a non-finite pose")
)

// Pose is a position and orientation pair.
type Pose struct {
	Position math.Vec3
	Rotation math.Quat
}

// IsFinite reports whether every pose component is finite.
func (p Pose) IsFinite() bool {
	return p.Position.IsFinite() && p.Rotation.IsFinite()
}

// Motion evaluates a pose at a time in seconds since the animation start.
// Evaluation must be idempotent: the same t always yields the same pose.
type Motion interface {
	At(t float32) (Pose, error)
}

// Keyframe is a (time, pose) interpolation anchor.
type Keyframe struct {
	Time float32
	Pose Pose
}

// KeyframeMotion interpolates between discrete keyframes: linearly for
// position, spherically for rotation. Queries before the first keyframe
// clamp to the first pose, queries after the last clamp to the last; there
// is no extrapolation.
type KeyframeMotion struct {
	keys   []Keyframe
	easing ease.TweenFunc
}

// NewKeyframeMotion validates the keyframes and builds a motion. easing
// shapes the interpolation parameter within each segment; nil means
// linear.
func NewKeyframeMotion(keys []Keyframe, easing ease.TweenFunc) (*KeyframeMotion, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeyframes
	}
	for i, k := range keys {
		if i > 0 && keys[i-1].Time >= k.Time {
			return nil, fmt.Errorf("%w: key %d at t=%v after t=%v",
				ErrNonIncreasingTimes, i, k.Time, keys[i-1].Time)
		}
		if !k.Pose.IsFinite() {
			return nil, fmt.Errorf("%w: keyframe %d", ErrNonFinitePose, i)
		}
	}
	if easing == nil {
		easing = ease.Linear
	}
	return &KeyframeMotion{
		keys:   append([]Keyframe(nil), keys...),
		easing: easing,
	}, nil
}

// At returns the interpolated pose at t.
func (m *KeyframeMotion) At(t float32) (Pose, error) {
	keys := m.keys
	if t <= keys[0].Time {
		return keys[0].Pose, nil
	}
	last := keys[len(keys)-1]
	if t >= last.Time {
		return last.Pose, nil
	}

	// First keyframe strictly after t; times are strictly increasing so
	// the segment [hi-1, hi] brackets t.
	hi := sort.Search(len(keys), func(i int) bool { return keys[i].Time > t })
	k0, k1 := keys[hi-1], keys[hi]

	u := (t - k0.Time) / (k1.Time - k0.Time)
	u = m.easing(u, 0, 1, 1)

	return Pose{
		Position: k0.Pose.Position.Lerp(k1.Pose.Position, u),
		Rotation: k0.Pose.Rotation.Slerp(k1.Pose.Rotation, u),
	}, nil
}

// Func is a scripted motion: seconds since animation start in, pose out.
// It must be total over the animation's active interval.
type Func func(t float32) Pose

// FunctionMotion evaluates a scripted motion function directly.
type FunctionMotion struct {
	fn Func
}

// NewFunctionMotion wraps a motion function.
func NewFunctionMotion(fn Func) *FunctionMotion {
	return &FunctionMotion{fn: fn}
}

// At evaluates the function. A non-finite result is reported as
// ErrNonFinitePose so the caller can freeze the object for the tick
// instead of propagating garbage into the pipeline.
func (m *FunctionMotion) At(t float32) (Pose, error) {
	pose := m.fn(t)
	if !pose.IsFinite() {
		return Pose{}, fmt.Errorf("%w: t=%v", ErrNonFinitePose, t)
	}
	return pose, nil
}

// TweenMotion glides from one pose to another over a fixed duration with
// an easing curve. Before the start it holds the from pose, after the
// duration it holds the to pose.
type TweenMotion struct {
	from, to Pose
	duration float32
	easing   ease.TweenFunc
}

// NewTweenMotion builds a one-shot pose tween. easing nil means linear.
func NewTweenMotion(from, to Pose, duration float32, easing ease.TweenFunc) *TweenMotion {
	if easing == nil {
		easing = ease.Linear
	}
	return &TweenMotion{from: from, to: to, duration: duration, easing: easing}
}

// At returns the blended pose at t. A fresh tween is driven to t on every
// call so evaluation stays idempotent.
func (m *TweenMotion) At(t float32) (Pose, error) {
	if t < 0 {
		t = 0
	}
	if m.duration <= 0 {
		return m.to, nil
	}
	tw := gween.New(0, 1, m.duration, m.easing)
	u, _ := tw.Update(t)
	return Pose{
		Position: m.from.Position.Lerp(m.to.Position, u),
		Rotation: m.from.Rotation.Slerp(m.to.Rotation, u),
	}, nil
}
