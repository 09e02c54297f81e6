package scenes

import (
	"github.com/decker502/tiltmaze/pkg/config"
	"github.com/decker502/tiltmaze/pkg/game"
	"github.com/decker502/tiltmaze/pkg/input"
	"github.com/decker502/tiltmaze/pkg/render"
	"github.com/decker502/tiltmaze/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

const (
	hintDesktop = "Move the mouse to tilt. Click to toggle walls. F11 fullscreen, H hide HUD."
	hintMobile  = "Tilt the device. Tap or shake to toggle walls."
)

var _ game.Scene = (*MazeScene)(nil)

// MazeScene 迷宫关卡场景
//
// 每帧先轮询指针，再由帧控制器完成输入、物理、规则和渲染同步。
type MazeScene struct {
	session  *game.Session
	frame    *systems.FrameController
	pointer  *input.PointerSource
	renderer *render.Renderer
	camera   *render.Camera
	hud      *render.HUD

	width, height int
}

// NewMazeScene 创建迷宫场景
//
// 参数:
//   - session: 游戏会话
//   - queue: 输入事件队列
//   - normalizer: 指针输入的归一化器
//   - cfg: 游戏调参
//   - maze: 迷宫布局，用于确定阴影平面
//   - hud: HUD，订阅胜利横幅
//   - log: 日志
func NewMazeScene(
	session *game.Session,
	queue *input.Queue,
	normalizer *input.Normalizer,
	cfg *config.GameConfig,
	maze *config.MazeConfig,
	hud *render.HUD,
	log *zap.Logger,
) *MazeScene {
	floor := maze.Floor
	shadow := &render.ShadowPlane{
		Z:    floor.Position[2] + floor.HalfExtents[2],
		MinX: floor.Position[0] - floor.HalfExtents[0],
		MinY: floor.Position[1] - floor.HalfExtents[1],
		MaxX: floor.Position[0] + floor.HalfExtents[0],
		MaxY: floor.Position[1] + floor.HalfExtents[1],
	}

	session.AddBannerListener(hud)
	sync := systems.NewRenderSyncSystem(session.Entities)

	return &MazeScene{
		session:  session,
		frame:    systems.NewFrameController(session, queue, sync, cfg.Tilt.VelocityDivisor, cfg.Physics.MaxFrameDt, log),
		pointer:  input.NewPointerSource(normalizer),
		renderer: render.NewRenderer(shadow),
		camera:   render.NewCamera(cfg.Camera.Z, cfg.Camera.FovDegrees),
		hud:      hud,
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
	}
}

// Update 执行一帧
func (s *MazeScene) Update(now float64) {
	s.pointer.Poll(now, s.width, s.height)
	s.frame.Update(now)
}

// Draw 绘制迷宫和 HUD
func (s *MazeScene) Draw(screen *ebiten.Image) {
	s.renderer.Render(screen, s.session.Scene, s.camera)

	hint := hintDesktop
	if !s.pointer.CanHover {
		hint = hintMobile
	}
	s.hud.Draw(screen, s.session.Mode.String(), hint)
}
