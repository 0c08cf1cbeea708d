package camera

import (
	gomath "math"
	"time"

	"github.com/Faultbox/command-bridge/pkg/math"
)

// Up is the world up direction used for every look-at.
var Up = math.Vec3{X: 0, Y: 1, Z: 0}

// Camera is the perspective camera the host renders the bridge from.
// Position is smoothed by FollowRig; View is recomputed from it every tick.
type Camera struct {
	Position math.Vec3
	View     math.Mat4

	FovY   float32 // Vertical field of view (radians)
	Aspect float32
	Near   float32
	Far    float32
}

// NewCamera creates a camera at the given position with a 50 degree field of view.
func NewCamera(position math.Vec3, aspect float32) *Camera {
	return &Camera{
		Position: position,
		View:     math.Identity(),
		FovY:     50 * gomath.Pi / 180,
		Aspect:   aspect,
		Near:     0.1,
		Far:      300,
	}
}

// LookAt recomputes the view matrix from the current position.
func (c *Camera) LookAt(target math.Vec3) {
	c.View = math.LookAt(c.Position, target, Up)
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() math.Mat4 {
	return math.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// SetAspect updates the aspect ratio after a resize.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// Rotation is the orientation of the bridge rig group.
type Rotation struct {
	Pitch float32 // About X (radians)
	Yaw   float32 // About Y (radians)
}

// Orientation returns the rotation as a quaternion in XYZ order.
func (r Rotation) Orientation() math.Quat {
	return math.QuatFromEuler(r.Pitch, r.Yaw, 0)
}

// Matrix returns the rotation as a 4x4 matrix.
func (r Rotation) Matrix() math.Mat4 {
	return r.Orientation().ToMat4()
}

// FollowRig eases the camera toward a pointer-driven target and idles the
// rig group. It holds tuning only; all state lives in the Camera and
// Rotation it is ticked with.
type FollowRig struct {
	// Pointer sway: target x = pointer.x*SwayX, y = RestHeight + pointer.y*SwayY.
	SwayX      float32
	SwayY      float32
	RestHeight float32
	RestDepth  float32 // Fixed target z

	// Per-tick smoothing factors in (0, 1).
	SmoothXY float32
	SmoothZ  float32

	// Fixed world point the camera faces.
	Focus math.Vec3

	// Yaw spin in radians per second.
	YawRate float32

	// Pitch wobble: sin(ms * PitchFrequency) * PitchAmplitude.
	PitchAmplitude float32
	PitchFrequency float64 // Radians per wall-clock millisecond
}

// DefaultFollowRig returns the bridge camera tuning.
func DefaultFollowRig() FollowRig {
	return FollowRig{
		SwayX:          0.6,
		SwayY:          0.22,
		RestHeight:     0.5,
		RestDepth:      7.2,
		SmoothXY:       0.05,
		SmoothZ:        0.02,
		Focus:          math.Vec3{X: 0, Y: 0.35, Z: -7.5},
		YawRate:        0.03,
		PitchAmplitude: 0.02,
		PitchFrequency: 0.00025,
	}
}

// Rest returns where the camera settles with the pointer centred.
func (f FollowRig) Rest() math.Vec3 {
	return f.Target(math.Vec2{})
}

// Target returns the camera position the rig eases toward for a pointer
// in normalized [-1, 1] coordinates.
func (f FollowRig) Target(pointer math.Vec2) math.Vec3 {
	return math.Vec3{
		X: pointer.X * f.SwayX,
		Y: f.RestHeight + pointer.Y*f.SwayY,
		Z: f.RestDepth,
	}
}

// PitchAt returns the rig pitch for a wall-clock time. It depends on the
// time alone, so dropped frames never accumulate error.
func (f FollowRig) PitchAt(now time.Time) float32 {
	ms := float64(now.UnixMilli())
	return float32(gomath.Sin(ms*f.PitchFrequency)) * f.PitchAmplitude
}

// Tick advances one displayed frame: it moves the camera a step toward the
// pointer target, re-aims it at Focus, spins the rig yaw by dt and sets
// the rig pitch from now. dt is in seconds.
func (f FollowRig) Tick(cam *Camera, rig *Rotation, pointer math.Vec2, dt float32, now time.Time) {
	target := f.Target(pointer)

	cam.Position.X = math.Lerp(cam.Position.X, target.X, f.SmoothXY)
	cam.Position.Y = math.Lerp(cam.Position.Y, target.Y, f.SmoothXY)
	cam.Position.Z = math.Lerp(cam.Position.Z, target.Z, f.SmoothZ)
	cam.LookAt(f.Focus)

	if rig != nil {
		rig.Yaw += dt * f.YawRate
		rig.Pitch = f.PitchAt(now)
	}
}
