// Package camera implements the first-person camera controller.
//
// Orientation is yaw about world +Y then pitch about the camera-local X
// axis; with both at zero the camera looks down -Z. There is no roll.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/wireview/internal/engine/input"
	"github.com/Faultbox/wireview/pkg/math"
)

var worldUp = math.Vec3{Y: 1}

// Config holds camera construction parameters. Angles at this surface are
// radians.
type Config struct {
	Position math.Vec3
	Yaw      float32
	Pitch    float32

	FOV  float32 // vertical field of view
	Near float32
	Far  float32

	MoveSpeed   float32 // world units per second
	Sensitivity float32 // radians per pixel of mouse travel
	MaxPitch    float32 // clamp bound, strictly inside pi/2

	// Mouse events with |delta| above this many pixels are discarded as
	// erratic (focus jumps, pointer warps).
	MotionThreshold float32
}

// DefaultConfig returns first-person defaults.
func DefaultConfig() Config {
	return Config{
		FOV:             math32.Pi / 2,
		Near:            0.1,
		Far:             1000,
		MoveSpeed:       10,
		Sensitivity:     1.0 / 400,
		MaxPitch:        89 * math32.Pi / 180,
		MotionThreshold: 200,
	}
}

// FirstPerson is a free-flying first-person camera. It owns the camera
// pose exclusively: nothing else in the module mutates it.
type FirstPerson struct {
	Position math.Vec3
	Yaw      float32 // wrapped to [0, 2*pi)
	Pitch    float32 // clamped to [-MaxPitch, MaxPitch]

	FOV  float32
	Near float32
	Far  float32

	MoveSpeed       float32
	Sensitivity     float32
	MaxPitch        float32
	MotionThreshold float32

	held map[input.Key]bool
}

// New creates a camera from the config, falling back to defaults for
// zero-valued tuning fields.
func New(cfg Config) *FirstPerson {
	def := DefaultConfig()
	if cfg.FOV == 0 {
		cfg.FOV = def.FOV
	}
	if cfg.Near == 0 {
		cfg.Near = def.Near
	}
	if cfg.Far == 0 {
		cfg.Far = def.Far
	}
	if cfg.MoveSpeed == 0 {
		cfg.MoveSpeed = def.MoveSpeed
	}
	if cfg.Sensitivity == 0 {
		cfg.Sensitivity = def.Sensitivity
	}
	if cfg.MaxPitch == 0 {
		cfg.MaxPitch = def.MaxPitch
	}
	if cfg.MotionThreshold == 0 {
		cfg.MotionThreshold = def.MotionThreshold
	}

	return &FirstPerson{
		Position:        cfg.Position,
		Yaw:             math.WrapAngle(cfg.Yaw),
		Pitch:           math.Clamp(cfg.Pitch, -cfg.MaxPitch, cfg.MaxPitch),
		FOV:             cfg.FOV,
		Near:            cfg.Near,
		Far:             cfg.Far,
		MoveSpeed:       cfg.MoveSpeed,
		Sensitivity:     cfg.Sensitivity,
		MaxPitch:        cfg.MaxPitch,
		MotionThreshold: cfg.MotionThreshold,
		held:            make(map[input.Key]bool),
	}
}

// HandleInput consumes one tick's input batch and advances the pose by dt
// seconds. Mouse look is applied before movement so motion axes always
// come from the orientation the camera currently faces. Given the same
// held-key state, the update is a pure function of (events, dt).
func (c *FirstPerson) HandleInput(events []input.Event, dt float32) {
	var dx, dy float32
	for _, ev := range events {
		switch ev.Type {
		case input.EventKeyDown:
			if ev.Key != input.KeyNone {
				c.held[ev.Key] = true
			}
		case input.EventKeyUp:
			delete(c.held, ev.Key)
		case input.EventMouseMove:
			if math32.Abs(ev.DX) > c.MotionThreshold || math32.Abs(ev.DY) > c.MotionThreshold {
				continue
			}
			dx += ev.DX
			dy += ev.DY
		}
	}

	// Mouse right turns right, mouse up looks up
	c.Yaw = math.WrapAngle(c.Yaw - dx*c.Sensitivity)
	c.Pitch = math.Clamp(c.Pitch-dy*c.Sensitivity, -c.MaxPitch, c.MaxPitch)

	dir := c.moveDirection()
	if dir != (math.Vec3{}) {
		c.Position = c.Position.Add(dir.Scale(c.MoveSpeed * dt))
	}
}

// moveDirection combines the held keys into a unit direction in world
// space. Forward and strafe follow the current orientation; rise and fall
// use the world vertical.
func (c *FirstPerson) moveDirection() math.Vec3 {
	var dir math.Vec3
	if c.held[input.KeyForward] {
		dir = dir.Add(c.Forward())
	}
	if c.held[input.KeyBack] {
		dir = dir.Sub(c.Forward())
	}
	if c.held[input.KeyStrafeRight] {
		dir = dir.Add(c.Right())
	}
	if c.held[input.KeyStrafeLeft] {
		dir = dir.Sub(c.Right())
	}
	if c.held[input.KeyRise] {
		dir = dir.Add(worldUp)
	}
	if c.held[input.KeyFall] {
		dir = dir.Sub(worldUp)
	}
	return dir.Normalize()
}

// Moving reports whether any direction key is held. The camera has no
// other internal state: when nothing is held it is idle and HandleInput
// with an empty batch changes nothing.
func (c *FirstPerson) Moving() bool {
	return len(c.held) > 0
}

// Forward returns the facing direction.
func (c *FirstPerson) Forward() math.Vec3 {
	cp := math32.Cos(c.Pitch)
	return math.Vec3{
		X: -math32.Sin(c.Yaw) * cp,
		Y: math32.Sin(c.Pitch),
		Z: -math32.Cos(c.Yaw) * cp,
	}
}

// Right returns the strafe direction, horizontal regardless of pitch.
func (c *FirstPerson) Right() math.Vec3 {
	return c.Forward().Cross(worldUp).Normalize()
}

// Orientation returns the camera rotation as a quaternion.
func (c *FirstPerson) Orientation() math.Quat {
	return math.QuatFromEuler(c.Yaw, c.Pitch, 0)
}

// ViewMatrix returns the world-to-camera matrix for the current pose.
// The pitch clamp keeps the forward axis away from the world vertical,
// so the world up reference is always valid.
func (c *FirstPerson) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Forward()), worldUp)
}
