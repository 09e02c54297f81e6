package systems

import (
	"math"

	"github.com/decker502/tiltmaze/pkg/game"
	"github.com/decker502/tiltmaze/pkg/input"
	"go.uber.org/zap"
)

// PhysicsWorld 帧控制器需要的物理能力
type PhysicsWorld interface {
	Step(dt float64)
}

// FrameController 每帧驱动一次完整的游戏循环
//
// 顺序：取出输入事件 → 推进物理 → 掉落/胜利检测 → 庆祝到期 → 设置速度 → 渲染同步。
type FrameController struct {
	session *game.Session
	world   PhysicsWorld
	queue   *input.Queue
	sync    *RenderSyncSystem
	divisor float64
	maxDt   float64
	log     *zap.Logger

	started bool
	last    float64
	// LastDt 最近一帧实际使用的 dt（秒）
	LastDt float64
}

// NewFrameController 创建帧控制器
//
// 参数:
//   - session: 游戏会话
//   - queue: 输入事件队列
//   - sync: 渲染同步系统
//   - divisor: 倾斜到速度的除数
//   - maxDt: 单帧 dt 上限（秒），0 表示不截断
//   - log: 日志
func NewFrameController(session *game.Session, queue *input.Queue, sync *RenderSyncSystem, divisor, maxDt float64, log *zap.Logger) *FrameController {
	if log == nil {
		log = zap.NewNop()
	}
	return &FrameController{
		session: session,
		world:   session.World,
		queue:   queue,
		sync:    sync,
		divisor: divisor,
		maxDt:   maxDt,
		log:     log.Named("frame"),
	}
}

// Update 执行一帧
//
// 参数:
//   - timeElapsed: 会话时钟（毫秒）
func (fc *FrameController) Update(timeElapsed float64) {
	fc.queue.Drain(fc.session.HandleEvent)

	dt := fc.delta(timeElapsed)
	fc.LastDt = dt
	fc.world.Step(dt)

	// 掉落和胜利同一帧内互斥
	if !fc.session.CheckFallOut() {
		fc.session.CheckWin(timeElapsed)
	}
	fc.session.Tick(timeElapsed)

	fc.session.ApplyTilt(fc.divisor)
	fc.sync.Update()
}

// delta 计算本帧 dt（秒）
// 第一帧为 0；非有限或负值夹紧为 0；超过 maxDt 截断为 maxDt
func (fc *FrameController) delta(now float64) float64 {
	if math.IsNaN(now) || math.IsInf(now, 0) {
		fc.log.Warn("non-finite frame time ignored", zap.Float64("now", now))
		return 0
	}
	if !fc.started {
		fc.started = true
		fc.last = now
		return 0
	}
	dt := (now - fc.last) / 1000
	fc.last = now
	if !(dt >= 0) || math.IsInf(dt, 0) {
		fc.log.Debug("clamping frame dt", zap.Float64("dt", dt))
		return 0
	}
	if fc.maxDt > 0 && dt > fc.maxDt {
		fc.log.Debug("long frame truncated", zap.Float64("dt", dt), zap.Float64("max", fc.maxDt))
		return fc.maxDt
	}
	return dt
}
