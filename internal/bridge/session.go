package bridge

import (
	"time"

	"github.com/Faultbox/command-bridge/internal/engine/camera"
	"github.com/Faultbox/command-bridge/pkg/math"
)

// StartPosition is where the camera sits on the first frame. The follow
// rig eases it out to its rest position from there.
var StartPosition = math.Vec3{X: 0, Y: 0, Z: 5}

// Session is the mutable state of one running bridge view.
type Session struct {
	Mode    Mode
	Camera  *camera.Camera
	Rig     camera.Rotation
	Follow  camera.FollowRig
	Pointer math.Vec2 // Last pointer position, normalized to [-1, 1]
}

// NewSession creates a session in the given mode with a camera of the
// given field of view (radians) and aspect ratio.
func NewSession(mode Mode, fovY, aspect float32) *Session {
	follow := camera.DefaultFollowRig()

	cam := camera.NewCamera(StartPosition, aspect)
	if fovY > 0 {
		cam.FovY = fovY
	}
	cam.LookAt(follow.Focus)

	return &Session{
		Mode:   mode,
		Camera: cam,
		Follow: follow,
	}
}

// Step advances the camera and the rig by one frame.
func (s *Session) Step(dt float32, now time.Time) {
	s.Follow.Tick(s.Camera, &s.Rig, s.Pointer, dt, now)
}

// ToggleMode flips between dark and light and returns the new mode.
func (s *Session) ToggleMode() Mode {
	s.Mode = s.Mode.Toggle()
	return s.Mode
}

// SetMode switches to m and reports whether anything changed.
func (s *Session) SetMode(m Mode) bool {
	if m == s.Mode {
		return false
	}
	s.Mode = m
	return true
}
