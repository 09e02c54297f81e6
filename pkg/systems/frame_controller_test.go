package systems

import (
	"math"
	"testing"

	"github.com/decker502/tiltmaze/pkg/components"
	"github.com/decker502/tiltmaze/pkg/config"
	"github.com/decker502/tiltmaze/pkg/ecs"
	"github.com/decker502/tiltmaze/pkg/game"
	"github.com/decker502/tiltmaze/pkg/input"
	"github.com/go-gl/mathgl/mgl64"
)

func newTestFrame(t *testing.T) (*FrameController, *game.Session, *input.Queue) {
	t.Helper()
	maze, err := config.LoadMazeConfig("../../data/maze.yaml")
	if err != nil {
		t.Fatalf("LoadMazeConfig: %v", err)
	}
	cfg, err := config.LoadGameConfig("../../data/game.yaml")
	if err != nil {
		t.Fatalf("LoadGameConfig: %v", err)
	}
	s, err := game.NewSession(maze, cfg, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	q := input.NewQueue(0)
	fc := NewFrameController(s, q, NewRenderSyncSystem(s.Entities), cfg.Tilt.VelocityDivisor, cfg.Physics.MaxFrameDt, nil)
	return fc, s, q
}

// recordingWorld 记录每次 Step 的 dt
type recordingWorld struct {
	steps []float64
}

func (w *recordingWorld) Step(dt float64) { w.steps = append(w.steps, dt) }

func TestFirstFrameDtZero(t *testing.T) {
	fc, s, _ := newTestFrame(t)
	start := s.Ball().Position

	fc.Update(12345)

	if fc.LastDt != 0 {
		t.Errorf("first frame dt = %f, want 0", fc.LastDt)
	}
	if s.Ball().Position != start {
		t.Errorf("first frame should not move the ball: %v -> %v", start, s.Ball().Position)
	}
}

func TestFrameDtClamping(t *testing.T) {
	fc, _, _ := newTestFrame(t)
	rec := &recordingWorld{}
	fc.world = rec

	times := []float64{1000, 1016, 1000, math.NaN(), math.Inf(1), 1032, 6032}
	for _, now := range times {
		fc.Update(now)
	}

	// 最后一帧相隔 5 秒，按 maxFrameDt 截断
	want := []float64{0, 0.016, 0, 0, 0, 0.032, 0.1}
	if len(rec.steps) != len(want) {
		t.Fatalf("steps = %v", rec.steps)
	}
	for i := range want {
		if math.Abs(rec.steps[i]-want[i]) > 1e-12 {
			t.Errorf("step %d dt = %f, want %f", i, rec.steps[i], want[i])
		}
	}
}

func TestLongFrameKeepsBallInMaze(t *testing.T) {
	fc, s, _ := newTestFrame(t)

	now := 0.0
	for i := 0; i < 60; i++ {
		fc.Update(now)
		now += 1000.0 / 60
	}

	// 向 +x 滚动，然后窗口失焦 5 秒
	s.SetTilt(input.TiltVector{X: 0, Y: 30})
	fc.Update(now)
	fc.Update(now + 5000)

	if fc.LastDt != 0.1 {
		t.Errorf("dt after long gap = %f, want 0.1", fc.LastDt)
	}
	pos := s.Ball().Position
	// 地板顶面 0.05，半径 0.03
	if pos.Z() < 0.05 {
		t.Errorf("ball sank through the floor: %v", pos)
	}
	if math.Abs(pos.X()) > 0.3 || math.Abs(pos.Y()) > 0.3 {
		t.Errorf("ball left the bounded maze: %v", pos)
	}
}

func TestOrientationDrivesVelocity(t *testing.T) {
	fc, s, q := newTestFrame(t)
	n := input.NewNormalizer(q, input.DefaultConfig(), nil)

	beta, gamma, alpha := 10.0, -5.0, 0.0
	n.Orientation(input.OrientationReading{Alpha: &alpha, Beta: &beta, Gamma: &gamma}, 0)

	fc.Update(0)

	v := s.Ball().Velocity
	if v.X() != -0.25 || v.Y() != -0.5 {
		t.Errorf("velocity = %v, want (-0.25, -0.5, _)", v)
	}
	if s.Tilt != (input.TiltVector{X: 10, Y: -5}) {
		t.Errorf("tilt = %+v", s.Tilt)
	}
}

func TestClickTogglesBeforeStep(t *testing.T) {
	fc, s, q := newTestFrame(t)
	n := input.NewNormalizer(q, input.DefaultConfig(), nil)

	n.Click(0)
	fc.Update(0)

	if s.Mode != game.ModeHardcore {
		t.Fatalf("mode = %v, want Hardcore", s.Mode)
	}
	for _, id := range s.Maze.Boundary {
		p, _ := ecs.GetComponent[*components.PresenceComponent](s.Entities, id)
		if p.Present {
			t.Errorf("boundary %d should be absent", id)
		}
		if p.Dirty {
			t.Errorf("boundary %d dirty flag should be cleared by render sync", id)
		}
	}
}

func TestFallOutSkipsWinSameFrame(t *testing.T) {
	fc, s, _ := newTestFrame(t)
	fc.world = &recordingWorld{}

	// 终点区域内但已掉出
	s.Ball().Position = mgl64.Vec3{0.26, -0.23, -1}
	fc.Update(0)

	if s.Celebrating() {
		t.Error("fall-out frame should not also trigger win")
	}
	if s.Ball().Position != (mgl64.Vec3{-0.22, 0.22, 0.2}) {
		t.Errorf("ball should respawn, got %v", s.Ball().Position)
	}
}

func TestWinCelebrationCycle(t *testing.T) {
	fc, s, _ := newTestFrame(t)
	rec := &recordingWorld{}
	fc.world = rec

	s.Ball().Position = mgl64.Vec3{0.26, -0.23, 0.08}
	fc.Update(100)
	if !s.Celebrating() {
		t.Fatal("should celebrate after reaching the finish")
	}

	fc.Update(1000)
	if !s.Celebrating() {
		t.Fatal("should still celebrate before expiry")
	}

	fc.Update(2100)
	if s.Celebrating() {
		t.Fatal("celebration should end at expiry")
	}
	if s.Ball().Position != (mgl64.Vec3{-0.22, 0.22, 0.2}) {
		t.Errorf("ball should respawn at start, got %v", s.Ball().Position)
	}
}

func TestBallSettlesOnFloor(t *testing.T) {
	fc, s, _ := newTestFrame(t)

	now := 0.0
	for i := 0; i < 120; i++ {
		fc.Update(now)
		now += 1000.0 / 60
	}

	z := s.Ball().Position.Z()
	// 地板顶面 0.05 + 半径 0.03
	if math.Abs(z-0.08) > 0.01 {
		t.Errorf("ball should rest on the floor, z = %f", z)
	}
	node := s.BallNode()
	if node.Position != s.Ball().Position {
		t.Error("ball node should follow the body")
	}
}
