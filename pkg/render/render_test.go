package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCameraProjectCenter(t *testing.T) {
	cam := NewCamera(1, 70)

	sx, sy, scale, ok := cam.Project(mgl64.Vec3{0, 0, 0}, 800, 600)
	if !ok {
		t.Fatal("origin should be visible")
	}
	if sx != 400 || sy != 300 {
		t.Errorf("origin should project to screen center, got (%f, %f)", sx, sy)
	}

	want := 300 / math.Tan(mgl64.DegToRad(35))
	if math.Abs(scale-want) > 1e-9 {
		t.Errorf("scale = %f, want %f", scale, want)
	}
}

func TestCameraProjectAxes(t *testing.T) {
	cam := NewCamera(1, 70)

	// +X 向右，+Y 向上（屏幕 Y 减小）
	x, y, _, _ := cam.Project(mgl64.Vec3{0.1, 0.1, 0}, 800, 600)
	if x <= 400 {
		t.Errorf("+X should map right of center, got %f", x)
	}
	if y >= 300 {
		t.Errorf("+Y should map above center, got %f", y)
	}

	// 离相机越近越大
	_, _, far, _ := cam.Project(mgl64.Vec3{0, 0, 0}, 800, 600)
	_, _, near, _ := cam.Project(mgl64.Vec3{0, 0, 0.5}, 800, 600)
	if near <= far {
		t.Errorf("closer points should scale larger: near=%f far=%f", near, far)
	}

	if _, _, _, ok := cam.Project(mgl64.Vec3{0, 0, 1}, 800, 600); ok {
		t.Error("point at camera height should be clipped")
	}
}

func TestSceneAddRemove(t *testing.T) {
	s := NewScene()
	wall := NewBoxNode("wall", mgl64.Vec3{0.01, 0.3, 0.1}, color.RGBA{A: 0xff}, LayerWall)

	if !s.Add(wall) {
		t.Fatal("first Add should succeed")
	}
	if s.Add(wall) {
		t.Error("duplicate Add should return false")
	}
	if s.Len() != 1 || !s.Contains(wall) {
		t.Fatal("scene should contain wall once")
	}
	if !s.Remove(wall) {
		t.Error("Remove should succeed")
	}
	if s.Remove(wall) {
		t.Error("second Remove should return false")
	}
	if s.Len() != 0 {
		t.Errorf("scene should be empty, len=%d", s.Len())
	}
}

func TestSceneDrawOrder(t *testing.T) {
	s := NewScene()
	ball := NewSphereNode("ball", 0.03, color.RGBA{A: 0xff})
	wallA := NewBoxNode("a", mgl64.Vec3{}, color.RGBA{}, LayerWall)
	floor := NewBoxNode("floor", mgl64.Vec3{}, color.RGBA{}, LayerFloor)
	wallB := NewBoxNode("b", mgl64.Vec3{}, color.RGBA{}, LayerWall)
	s.Add(ball)
	s.Add(wallA)
	s.Add(floor)
	s.Add(wallB)

	order := s.DrawOrder()
	names := []string{order[0].Name, order[1].Name, order[2].Name, order[3].Name}
	want := []string{"floor", "a", "b", "ball"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("draw order = %v, want %v", names, want)
		}
	}
}

func TestHUDBanner(t *testing.T) {
	h := NewHUD(true)
	if h.BannerVisible() {
		t.Fatal("banner should start hidden")
	}
	h.ShowWinBanner()
	if !h.BannerVisible() {
		t.Error("ShowWinBanner should show banner")
	}
	h.HideWinBanner()
	if h.BannerVisible() {
		t.Error("HideWinBanner should hide banner")
	}
}

func TestShadowPlaneContains(t *testing.T) {
	p := ShadowPlane{Z: 0.05, MinX: -0.3, MinY: -0.3, MaxX: 0.3, MaxY: 0.3}
	if !p.contains(mgl64.Vec3{0, 0, 0.08}) {
		t.Error("ball above floor should cast shadow")
	}
	if p.contains(mgl64.Vec3{0.5, 0, 0.08}) {
		t.Error("ball outside floor should not cast shadow")
	}
	if p.contains(mgl64.Vec3{0, 0, -0.2}) {
		t.Error("ball below floor should not cast shadow")
	}
}
