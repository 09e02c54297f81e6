package scenes

import (
	"testing"

	"github.com/decker502/tiltmaze/pkg/config"
	"github.com/decker502/tiltmaze/pkg/game"
	"github.com/decker502/tiltmaze/pkg/input"
	"github.com/decker502/tiltmaze/pkg/render"
	"github.com/go-gl/mathgl/mgl64"
)

func TestMazeSceneWiresBanner(t *testing.T) {
	maze, err := config.LoadMazeConfig("../../data/maze.yaml")
	if err != nil {
		t.Fatalf("LoadMazeConfig: %v", err)
	}
	cfg, err := config.LoadGameConfig("../../data/game.yaml")
	if err != nil {
		t.Fatalf("LoadGameConfig: %v", err)
	}
	session, err := game.NewSession(maze, cfg, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	q := input.NewQueue(0)
	hud := render.NewHUD(true)
	scene := NewMazeScene(session, q, input.NewNormalizer(q, input.DefaultConfig(), nil), cfg, maze, hud, nil)

	if scene.session != session {
		t.Fatal("scene should drive the given session")
	}

	session.Ball().Position = mgl64.Vec3{0.26, -0.23, 0.08}
	session.CheckWin(0)
	if !hud.BannerVisible() {
		t.Error("HUD should show the banner when the session wins")
	}
	session.Tick(cfg.Rules.CelebrationMs)
	if hud.BannerVisible() {
		t.Error("HUD should hide the banner after the celebration")
	}
}
