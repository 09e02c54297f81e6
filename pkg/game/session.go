package game

import (
	"fmt"

	"github.com/decker502/tiltmaze/pkg/components"
	"github.com/decker502/tiltmaze/pkg/config"
	"github.com/decker502/tiltmaze/pkg/ecs"
	"github.com/decker502/tiltmaze/pkg/entities"
	"github.com/decker502/tiltmaze/pkg/input"
	"github.com/decker502/tiltmaze/pkg/physics"
	"github.com/decker502/tiltmaze/pkg/render"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Session 一局游戏的全部可变状态
//
// 只有帧循环（ebiten Update）会修改 Session；输入源通过 input.Queue 投递事件。
type Session struct {
	World    *physics.World
	Scene    *render.Scene
	Entities *ecs.EntityManager
	Maze     *entities.Maze

	Mode GameMode
	Win  WinStatus
	// Tilt 最近一次的倾斜向量，未被覆盖前一直有效
	Tilt input.TiltVector

	ball      *physics.Body
	ballNode  *render.Node
	ballStart mgl64.Vec3
	finish    *components.FinishZoneComponent

	fallOutZ      float64
	celebrationMs float64

	listeners []BannerListener
	log       *zap.Logger
}

// NewSession 创建物理世界、场景图并按迷宫配置生成所有实体
//
// 参数:
//   - maze: 迷宫布局
//   - cfg: 游戏调参
//   - log: 日志，nil 时不输出
//
// 返回:
//   - *Session: 处于 Normal + Idle 状态的会话
//   - error: 物理世界或实体创建失败时返回错误
func NewSession(maze *config.MazeConfig, cfg *config.GameConfig, log *zap.Logger) (*Session, error) {
	if maze == nil || cfg == nil {
		return nil, fmt.Errorf("maze and game config are required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	world, err := physics.NewWorld(physics.Config{
		Gravity:          cfg.Physics.Gravity.Mgl(),
		SolverIterations: cfg.Physics.SolverIterations,
		MaxSubStep:       cfg.Physics.MaxSubStep,
		Broadphase:       physics.NaiveBroadphase{},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create physics world: %w", err)
	}

	s := &Session{
		World:         world,
		Scene:         render.NewScene(),
		Entities:      ecs.NewEntityManager(),
		Mode:          ModeNormal,
		fallOutZ:      cfg.Rules.FallOutZ,
		celebrationMs: cfg.Rules.CelebrationMs,
		log:           log.Named("game"),
	}

	s.Maze, err = entities.BuildMaze(s.Entities, s.World, s.Scene, maze)
	if err != nil {
		return nil, fmt.Errorf("failed to build maze: %w", err)
	}

	body, ok := ecs.GetComponent[*components.BodyComponent](s.Entities, s.Maze.Ball)
	if !ok {
		return nil, fmt.Errorf("ball entity %d has no body", s.Maze.Ball)
	}
	mesh, _ := ecs.GetComponent[*components.MeshComponent](s.Entities, s.Maze.Ball)
	ball, _ := ecs.GetComponent[*components.BallComponent](s.Entities, s.Maze.Ball)
	s.ball = body.Body
	s.ballNode = mesh.Node
	s.ballStart = ball.Start

	s.finish, ok = ecs.GetComponent[*components.FinishZoneComponent](s.Entities, s.Maze.Finish)
	if !ok {
		return nil, fmt.Errorf("finish entity %d has no zone", s.Maze.Finish)
	}

	s.log.Info("session created",
		zap.Int("bodies", s.World.Len()),
		zap.Int("nodes", s.Scene.Len()),
		zap.Int("boundaryWalls", len(s.Maze.Boundary)))
	return s, nil
}

// AddBannerListener 订阅胜利横幅的显示和隐藏
func (s *Session) AddBannerListener(l BannerListener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// Ball 返回小球刚体
func (s *Session) Ball() *physics.Body {
	return s.ball
}

// BallNode 返回小球的可视节点
func (s *Session) BallNode() *render.Node {
	return s.ballNode
}

// Celebrating 是否处于庆祝状态
func (s *Session) Celebrating() bool {
	return s.Win.Celebrating
}

// Toggle 切换难度模式
//
// 进入 Hardcore 时每面边界墙的刚体移出物理世界、节点移出场景；
// 回到 Normal 时全部重新加入。固定墙不受影响。每次调用恰好切换一次。
func (s *Session) Toggle() {
	if s.Mode == ModeNormal {
		s.Mode = ModeHardcore
	} else {
		s.Mode = ModeNormal
	}
	present := s.Mode == ModeNormal

	for _, id := range s.Maze.Boundary {
		if err := s.setWallPresence(id, present); err != nil {
			s.log.Error("boundary wall toggle failed", zap.Uint64("entity", uint64(id)), zap.Error(err))
		}
	}
	s.log.Info("mode toggled", zap.Stringer("mode", s.Mode))
}

func (s *Session) setWallPresence(id ecs.EntityID, present bool) error {
	presence, ok := ecs.GetComponent[*components.PresenceComponent](s.Entities, id)
	if !ok {
		return fmt.Errorf("entity %d has no presence", id)
	}
	if presence.Present == present {
		return nil
	}
	body, _ := ecs.GetComponent[*components.BodyComponent](s.Entities, id)
	mesh, _ := ecs.GetComponent[*components.MeshComponent](s.Entities, id)

	if present {
		if err := s.World.AddBody(body.Body); err != nil {
			return err
		}
		s.Scene.Add(mesh.Node)
	} else {
		if err := s.World.RemoveBody(body.Body); err != nil {
			return err
		}
		s.Scene.Remove(mesh.Node)
	}
	presence.Present = present
	presence.Dirty = true
	return nil
}

// SetTilt 记录最新的倾斜向量
func (s *Session) SetTilt(t input.TiltVector) {
	s.Tilt = t
}

// ApplyTilt 按倾斜设置小球水平速度：vx = tiltY/divisor，vy = -tiltX/divisor
// 竖直速度保持不变
func (s *Session) ApplyTilt(divisor float64) {
	v := s.ball.Velocity
	s.ball.Velocity = mgl64.Vec3{s.Tilt.Y / divisor, -s.Tilt.X / divisor, v.Z()}
}

// Respawn 小球回到起点，速度清零
func (s *Session) Respawn() {
	s.ball.Reset(s.ballStart)
}

// CheckFallOut 空闲状态下小球掉出迷宫时重生
// 返回是否发生了重生
func (s *Session) CheckFallOut() bool {
	if s.Win.Celebrating {
		return false
	}
	if s.ball.Position.Z() >= s.fallOutZ {
		return false
	}
	s.log.Info("ball fell out", zap.Float64("z", s.ball.Position.Z()))
	s.Respawn()
	return true
}

// CheckWin 空闲状态下小球进入终点区域时开始庆祝
//
// 参数:
//   - now: 会话时钟（毫秒）
//
// 返回:
//   - bool: 本次调用是否触发胜利
func (s *Session) CheckWin(now float64) bool {
	if s.Win.Celebrating {
		return false
	}
	p := s.ball.Position
	if !s.finish.Contains(p.X(), p.Y()) {
		return false
	}

	s.Win = WinStatus{Celebrating: true, Expiry: now + s.celebrationMs}
	s.log.Info("finish reached", zap.Float64("x", p.X()), zap.Float64("y", p.Y()), zap.Stringer("mode", s.Mode))
	for _, l := range s.listeners {
		l.ShowWinBanner()
	}
	return true
}

// Tick 庆祝到期后隐藏横幅、重生小球并回到空闲
// 返回是否发生了到期
func (s *Session) Tick(now float64) bool {
	if !s.Win.Celebrating || now < s.Win.Expiry {
		return false
	}
	for _, l := range s.listeners {
		l.HideWinBanner()
	}
	s.Respawn()
	s.Win = WinStatus{}
	s.log.Debug("celebration ended")
	return true
}

// HandleEvent 把一个输入事件应用到会话
func (s *Session) HandleEvent(e input.Event) {
	switch e.Kind {
	case input.EventTiltChanged:
		s.SetTilt(e.Tilt)
	case input.EventToggleRequested:
		s.Toggle()
	}
}

// BoundaryPresent 边界墙是否全部在物理世界和场景中
func (s *Session) BoundaryPresent() bool {
	for _, id := range s.Maze.Boundary {
		body, _ := ecs.GetComponent[*components.BodyComponent](s.Entities, id)
		mesh, _ := ecs.GetComponent[*components.MeshComponent](s.Entities, id)
		if !s.World.Contains(body.Body) || !s.Scene.Contains(mesh.Node) {
			return false
		}
	}
	return true
}

// BoundaryAbsent 边界墙是否全部不在物理世界和场景中
func (s *Session) BoundaryAbsent() bool {
	for _, id := range s.Maze.Boundary {
		body, _ := ecs.GetComponent[*components.BodyComponent](s.Entities, id)
		mesh, _ := ecs.GetComponent[*components.MeshComponent](s.Entities, id)
		if s.World.Contains(body.Body) || s.Scene.Contains(mesh.Node) {
			return false
		}
	}
	return true
}
