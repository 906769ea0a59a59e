package camera

import (
	"math"
	"testing"
)

func length(x, y, z float32) float64 {
	return math.Sqrt(float64(x*x + y*y + z*z))
}

func TestNew(t *testing.T) {
	cam := New(9, 45, 5, 20)

	x, y, z := cam.Position()
	if math.Abs(float64(x)) > 1e-6 || math.Abs(float64(y)) > 1e-6 || math.Abs(float64(z-9)) > 1e-5 {
		t.Errorf("expected camera at (0, 0, 9), got (%f, %f, %f)", x, y, z)
	}
	if cam.Fovy != 45 {
		t.Errorf("expected fovy 45, got %f", cam.Fovy)
	}
}

func TestNewClampsDistance(t *testing.T) {
	if cam := New(50, 45, 5, 20); cam.Distance != 20 {
		t.Errorf("expected distance clamped to 20, got %f", cam.Distance)
	}
}

func TestZoomLimits(t *testing.T) {
	cam := New(9, 45, 5, 20)

	tests := []struct {
		notches float32
		want    float32
	}{
		{1, 8.5},
		{100, 5},
		{-100, 20},
	}
	for _, tt := range tests {
		cam.Zoom(tt.notches, 0.5)
		if math.Abs(float64(cam.Distance-tt.want)) > 1e-6 {
			t.Errorf("after %v notches: distance %f, want %f", tt.notches, cam.Distance, tt.want)
		}
	}
}

func TestOrbitKeepsDistance(t *testing.T) {
	cam := New(9, 45, 5, 20)
	for i := 0; i < 50; i++ {
		cam.Orbit(37, -11, 0.01)
		x, y, z := cam.Position()
		if d := length(x, y, z); math.Abs(d-9) > 1e-4 {
			t.Fatalf("step %d: distance %f, want 9", i, d)
		}
	}
}

func TestOrbitPitchClamped(t *testing.T) {
	cam := New(9, 45, 5, 20)
	cam.Orbit(0, 10000, 0.01)
	if cam.Pitch > maxPitch {
		t.Errorf("pitch %f exceeds limit %f", cam.Pitch, maxPitch)
	}
	cam.Orbit(0, -20000, 0.01)
	if cam.Pitch < -maxPitch {
		t.Errorf("pitch %f below limit %f", cam.Pitch, -maxPitch)
	}
}

func TestOrbitDirection(t *testing.T) {
	cam := New(9, 45, 5, 20)

	// Quarter turn to the right brings the camera to -X
	cam.Orbit(100, 0, math.Pi/200)
	x, _, z := cam.Position()
	if math.Abs(float64(x+9)) > 1e-4 || math.Abs(float64(z)) > 1e-4 {
		t.Errorf("expected (-9, 0, 0), got (%f, _, %f)", x, z)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{4 * math.Pi, 0},
	}
	for _, tt := range tests {
		if got := wrapAngle(float32(tt.in)); math.Abs(float64(got)-tt.want) > 1e-5 {
			t.Errorf("wrapAngle(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestReset(t *testing.T) {
	cam := New(9, 45, 5, 20)
	cam.Orbit(120, 40, 0.01)
	cam.Zoom(3, 1)

	cam.Reset()

	if cam.Yaw != 0 || cam.Pitch != 0 || cam.Distance != 9 {
		t.Errorf("reset left yaw %f pitch %f distance %f", cam.Yaw, cam.Pitch, cam.Distance)
	}
}
