package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := NewWorld(DefaultConfig())
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	return w
}

func newFloor() *Body {
	return NewBody(0, Box(mgl64.Vec3{0.3, 0.3, 0.05}), mgl64.Vec3{})
}

func newBall(pos mgl64.Vec3) *Body {
	return NewBody(10, Sphere(0.03), pos)
}

func TestNewWorldRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero iterations", Config{Gravity: mgl64.Vec3{0, 0, -9}}},
		{"nan gravity", Config{Gravity: mgl64.Vec3{math.NaN(), 0, 0}, SolverIterations: 10}},
		{"negative substep", Config{SolverIterations: 10, MaxSubStep: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewWorld(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestAddRemoveBody(t *testing.T) {
	w := newTestWorld(t)
	floor := newFloor()

	if err := w.AddBody(floor); err != nil {
		t.Fatalf("AddBody() error = %v", err)
	}
	if !w.Contains(floor) || !floor.InWorld() || w.Len() != 1 {
		t.Fatal("floor should be in world after AddBody")
	}
	if err := w.AddBody(floor); !errors.Is(err, ErrBodyExists) {
		t.Errorf("second AddBody() = %v, want ErrBodyExists", err)
	}

	if err := w.RemoveBody(floor); err != nil {
		t.Fatalf("RemoveBody() error = %v", err)
	}
	if w.Contains(floor) || floor.InWorld() || w.Len() != 0 {
		t.Fatal("floor should not be in world after RemoveBody")
	}
	if err := w.RemoveBody(floor); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("second RemoveBody() = %v, want ErrUnknownBody", err)
	}

	// 移除后可以再次加入
	if err := w.AddBody(floor); err != nil {
		t.Errorf("re-adding removed body should succeed: %v", err)
	}
}

func TestBodyCannotJoinTwoWorlds(t *testing.T) {
	w1 := newTestWorld(t)
	w2 := newTestWorld(t)
	b := newFloor()
	if err := w1.AddBody(b); err != nil {
		t.Fatal(err)
	}
	if err := w2.AddBody(b); !errors.Is(err, ErrBodyExists) {
		t.Errorf("AddBody() to second world = %v, want ErrBodyExists", err)
	}
}

func TestStepIgnoresInvalidDt(t *testing.T) {
	w := newTestWorld(t)
	ball := newBall(mgl64.Vec3{0, 0, 1})
	_ = w.AddBody(ball)

	for _, dt := range []float64{0, -0.016, math.NaN(), math.Inf(1)} {
		w.Step(dt)
	}
	if ball.Position != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("ball moved on invalid dt: %v", ball.Position)
	}
	if ball.Velocity != (mgl64.Vec3{}) {
		t.Errorf("ball velocity changed on invalid dt: %v", ball.Velocity)
	}
}

func TestGravityAccelerates(t *testing.T) {
	w := newTestWorld(t)
	ball := newBall(mgl64.Vec3{0, 0, 1})
	_ = w.AddBody(ball)

	w.Step(0.1)

	if got := ball.Velocity.Z(); math.Abs(got-(-0.9)) > 1e-9 {
		t.Errorf("expected vz -0.9 after 0.1s, got %f", got)
	}
	if ball.Position.Z() >= 1 {
		t.Errorf("ball should fall, z = %f", ball.Position.Z())
	}
}

func TestBallRestsOnFloor(t *testing.T) {
	w := newTestWorld(t)
	_ = w.AddBody(newFloor())
	ball := newBall(mgl64.Vec3{-0.22, 0.22, 0.2})
	_ = w.AddBody(ball)

	for i := 0; i < 240; i++ {
		w.Step(1.0 / 60.0)
	}

	// 地板顶面 0.05 + 半径 0.03
	if z := ball.Position.Z(); math.Abs(z-0.08) > 0.005 {
		t.Errorf("ball should rest at z≈0.08, got %f", z)
	}
	if vz := ball.Velocity.Z(); math.Abs(vz) > 0.2 {
		t.Errorf("resting ball should have small vz, got %f", vz)
	}
}

func TestWallStopsBall(t *testing.T) {
	w := newTestWorld(t)
	_ = w.AddBody(newFloor())
	wall := NewBody(0, Box(mgl64.Vec3{0.01, 0.3, 0.2}), mgl64.Vec3{0.1, 0, 0})
	_ = w.AddBody(wall)
	ball := newBall(mgl64.Vec3{0, 0, 0.08})
	_ = w.AddBody(ball)

	for i := 0; i < 120; i++ {
		ball.Velocity = mgl64.Vec3{1, 0, ball.Velocity.Z()}
		w.Step(1.0 / 60.0)
	}

	// 墙的左侧面 x=0.09，球心不应越过 0.09-0.03
	if x := ball.Position.X(); x > 0.06+1e-6 {
		t.Errorf("ball passed through wall, x = %f", x)
	}
}

func TestRollingChangesOrientation(t *testing.T) {
	w := newTestWorld(t)
	_ = w.AddBody(newFloor())
	ball := newBall(mgl64.Vec3{0, 0, 0.08})
	_ = w.AddBody(ball)

	for i := 0; i < 30; i++ {
		ball.Velocity = mgl64.Vec3{0.5, 0, ball.Velocity.Z()}
		w.Step(1.0 / 60.0)
	}

	if ball.Quaternion.ApproxEqual(mgl64.QuatIdent()) {
		t.Error("rolling ball should rotate")
	}
	if l := ball.Quaternion.Len(); math.Abs(l-1) > 1e-9 {
		t.Errorf("orientation should stay normalized, len = %f", l)
	}
	// 沿 +X 滚动时绕 +Y 轴旋转
	if ball.AngularVelocity.Y() <= 0 {
		t.Errorf("expected positive angular velocity around Y, got %v", ball.AngularVelocity)
	}
}

func TestStepDeterministic(t *testing.T) {
	run := func() mgl64.Vec3 {
		w := newTestWorld(t)
		_ = w.AddBody(newFloor())
		ball := newBall(mgl64.Vec3{-0.22, 0.22, 0.2})
		_ = w.AddBody(ball)
		for i := 0; i < 90; i++ {
			ball.Velocity = mgl64.Vec3{0.3, -0.2, ball.Velocity.Z()}
			w.Step(1.0 / 60.0)
		}
		return ball.Position
	}

	if a, b := run(), run(); a != b {
		t.Errorf("simulation not deterministic: %v vs %v", a, b)
	}
}

func TestSubStepsSplitLongFrame(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSubStep = 1.0 / 120.0
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatal(err)
	}
	_ = w.AddBody(newFloor())
	wall := NewBody(0, Box(mgl64.Vec3{0.01, 0.3, 0.2}), mgl64.Vec3{0.1, 0, 0})
	_ = w.AddBody(wall)
	ball := newBall(mgl64.Vec3{0, 0, 0.08})
	_ = w.AddBody(ball)

	// 一次 0.1s 的长帧，不拆分时球会直接穿过 0.02 厚的墙
	ball.Velocity = mgl64.Vec3{1.5, 0, 0}
	w.Step(0.1)

	if x := ball.Position.X(); x > 0.06+1e-6 {
		t.Errorf("ball tunneled through wall on long frame, x = %f", x)
	}
}

func TestNaiveBroadphaseSkipsStaticPairs(t *testing.T) {
	bodies := []*Body{newFloor(), newFloor(), newBall(mgl64.Vec3{})}
	pairs := NaiveBroadphase{}.Pairs(bodies, nil)
	if len(pairs) != 2 {
		t.Errorf("expected 2 candidate pairs, got %d", len(pairs))
	}
}

func TestStepDoesNotAllocate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSubStep = 1.0 / 120.0
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatal(err)
	}
	_ = w.AddBody(newFloor())
	ball := newBall(mgl64.Vec3{0, 0, 0.08})
	_ = w.AddBody(ball)
	w.Step(1.0 / 60.0)

	// 每帧拆成两个子步，接触缓存应全部复用
	allocs := testing.AllocsPerRun(50, func() {
		ball.Velocity = mgl64.Vec3{0.3, 0, ball.Velocity.Z()}
		w.Step(1.0 / 60.0)
	})
	if allocs != 0 {
		t.Errorf("Step allocated %.1f times per call, want 0", allocs)
	}
}
