package starfield

import (
	"math/rand"
	"testing"

	"github.com/Faultbox/command-bridge/pkg/math"
)

// fixedSource replays a sequence of values, wrapping around.
type fixedSource struct {
	values []float32
	next   int
}

func (s *fixedSource) Float32() float32 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// inBounds allows for float32 rounding between the two ways of writing the half height.
func inBounds(p, min, max math.Vec3) bool {
	const eps = 1e-4
	return p.X >= min.X-eps && p.X <= max.X+eps &&
		p.Y >= min.Y-eps && p.Y <= max.Y+eps &&
		p.Z >= min.Z-eps && p.Z <= max.Z+eps
}

func TestGenerateBounds(t *testing.T) {
	tests := []struct {
		count  int
		spread float32
	}{
		{1, 1},
		{4, 10},
		{100, 0.5},
		{DefaultCount, DefaultSpread},
	}

	for _, tt := range tests {
		field := New(rand.New(rand.NewSource(42)), tt.count, tt.spread)
		if len(field.Points) != tt.count {
			t.Fatalf("count=%d spread=%v: got %d points", tt.count, tt.spread, len(field.Points))
		}

		min, max := field.Bounds()
		for i, p := range field.Points {
			if !inBounds(p, min, max) {
				t.Errorf("count=%d spread=%v: point %d = %v outside [%v, %v]", tt.count, tt.spread, i, p, min, max)
			}
		}
	}
}

func TestGenerateExample(t *testing.T) {
	points := Generate(rand.New(rand.NewSource(7)), 4, 10)
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}

	for i, p := range points {
		if p.X < -5 || p.X > 5 {
			t.Errorf("point %d: x = %v, want [-5, 5]", i, p.X)
		}
		if p.Y < -2.75 || p.Y > 2.75 {
			t.Errorf("point %d: y = %v, want [-2.75, 2.75]", i, p.Y)
		}
		if p.Z < -10 || p.Z > 0 {
			t.Errorf("point %d: z = %v, want [-10, 0]", i, p.Z)
		}
	}
}

func TestGenerateExtremes(t *testing.T) {
	// 0 maps to the low corner; z starts at the origin plane.
	low := Generate(&fixedSource{values: []float32{0}}, 1, 10)[0]
	if low != (math.Vec3{X: -5, Y: -2.75, Z: 0}) {
		t.Errorf("low corner: got %v", low)
	}

	// Values just below 1 approach the far corner.
	high := Generate(&fixedSource{values: []float32{0.9999999}}, 1, 10)[0]
	if high.X > 5 || high.X < 4.999 {
		t.Errorf("high corner x: got %v", high.X)
	}
	if high.Z < -10 || high.Z > -9.999 {
		t.Errorf("high corner z: got %v", high.Z)
	}
}

func TestGenerateDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		spread float32
	}{
		{"zero count", 0, 10},
		{"negative count", -3, 10},
		{"zero spread", 10, 0},
		{"negative spread", 10, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := Generate(rand.New(rand.NewSource(1)), tt.count, tt.spread)
			if points == nil {
				t.Fatal("expected empty slice, got nil")
			}
			if len(points) != 0 {
				t.Errorf("expected no points, got %d", len(points))
			}
		})
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a := Generate(rand.New(rand.NewSource(99)), 64, 200)
	b := Generate(rand.New(rand.NewSource(99)), 64, 200)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs between identical seeds: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestFlatten(t *testing.T) {
	points := []math.Vec3{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}
	got := Flatten(points)
	want := []float32{1, 2, 3, 4, 5, 6}

	if len(got) != len(want) {
		t.Fatalf("Flatten length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Flatten[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFieldBuffer(t *testing.T) {
	field := New(rand.New(rand.NewSource(3)), 10, 20)
	if field.Count != 10 {
		t.Errorf("Count = %d, want 10", field.Count)
	}
	if got := len(field.Buffer()); got != 30 {
		t.Errorf("Buffer length = %d, want 30", got)
	}
}
