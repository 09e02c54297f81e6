package input

import (
	"math"

	"go.uber.org/zap"
)

// TiltVector 倾斜向量（度）
// X 对应前后倾斜，Y 对应左右倾斜，不做范围限制
type TiltVector struct {
	X, Y float64
}

// OrientationReading 设备方向读数（度），nil 表示该轴不可用
type OrientationReading struct {
	Alpha, Beta, Gamma *float64
}

// MotionReading 设备加速度读数，nil 表示该轴不可用
type MotionReading struct {
	X, Y, Z *float64
}

// Config 归一化参数
type Config struct {
	// PointerRange 指针从中心到边缘对应的倾斜角
	PointerRange float64
	// ShakeThreshold 触发切换的加速度 L1 范数
	ShakeThreshold float64
	// ShakeCooldownMs 两次摇晃切换的最小间隔
	ShakeCooldownMs float64
}

// DefaultConfig 返回默认参数
func DefaultConfig() Config {
	return Config{
		PointerRange:    30,
		ShakeThreshold:  60,
		ShakeCooldownMs: 1000,
	}
}

// Normalizer 把原始输入转换为事件
//
// Orientation / Motion 可以在传感器 goroutine 上调用；
// PointerMoved / Click 只由帧循环调用。
type Normalizer struct {
	queue *Queue
	gate  *ShakeGate
	cfg   Config
	log   *zap.Logger

	hasPointer bool
	lastNX     float64
	lastNY     float64
}

// NewNormalizer 创建归一化器
//
// 参数:
//   - queue: 事件投递目标
//   - cfg: 归一化参数
//   - log: 日志，nil 时不输出
func NewNormalizer(queue *Queue, cfg Config, log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{
		queue: queue,
		gate:  NewShakeGate(cfg.ShakeCooldownMs),
		cfg:   cfg,
		log:   log.Named("input"),
	}
}

// Gate 返回摇晃闸门
func (n *Normalizer) Gate() *ShakeGate {
	return n.gate
}

// TiltFromPointer 归一化指针坐标转换为倾斜
// 光标 X 控制 tilt.Y，光标 Y 控制 tilt.X
func TiltFromPointer(nx, ny, pointerRange float64) TiltVector {
	return TiltVector{
		X: ny*2*pointerRange - pointerRange,
		Y: nx*2*pointerRange - pointerRange,
	}
}

// TiltFromOrientation beta → X，gamma → Y，各自向下截断到两位小数
func TiltFromOrientation(beta, gamma float64) TiltVector {
	return TiltVector{X: truncate2(beta), Y: truncate2(gamma)}
}

func truncate2(v float64) float64 {
	return math.Floor(v*100) / 100
}

// PointerMoved 处理可悬停指针的移动
//
// 参数:
//   - nx, ny: [0,1] 归一化视口坐标
//   - now: 会话时钟（毫秒）
//
// 返回:
//   - bool: 位置变化并已投递事件时为 true
func (n *Normalizer) PointerMoved(nx, ny, now float64) bool {
	if n.hasPointer && nx == n.lastNX && ny == n.lastNY {
		return false
	}
	n.hasPointer = true
	n.lastNX, n.lastNY = nx, ny

	return n.push(Event{
		Kind:   EventTiltChanged,
		Tilt:   TiltFromPointer(nx, ny, n.cfg.PointerRange),
		Source: SourcePointer,
		At:     now,
	})
}

// Orientation 处理设备方向读数
// 任一轴缺失时忽略，保留上一次的倾斜
func (n *Normalizer) Orientation(r OrientationReading, now float64) bool {
	if r.Alpha == nil || r.Beta == nil || r.Gamma == nil {
		return false
	}
	if !finite(*r.Beta) || !finite(*r.Gamma) {
		return false
	}
	return n.push(Event{
		Kind:   EventTiltChanged,
		Tilt:   TiltFromOrientation(*r.Beta, *r.Gamma),
		Source: SourceOrientation,
		At:     now,
	})
}

// Motion 处理设备加速度读数
// 加速度 L1 范数超过阈值且闸门打开时请求一次切换
func (n *Normalizer) Motion(r MotionReading, now float64) bool {
	if r.X == nil || r.Y == nil || r.Z == nil {
		return false
	}
	norm := math.Abs(*r.X) + math.Abs(*r.Y) + math.Abs(*r.Z)
	if !(norm > n.cfg.ShakeThreshold) {
		return false
	}
	if !n.gate.TryFire(now) {
		n.log.Debug("shake ignored during cooldown", zap.Float64("norm", norm))
		return false
	}
	n.log.Debug("shake toggle", zap.Float64("norm", norm))
	return n.push(Event{Kind: EventToggleRequested, Source: SourceMotion, At: now})
}

// Click 点击或触摸请求一次切换
func (n *Normalizer) Click(now float64) bool {
	return n.push(Event{Kind: EventToggleRequested, Source: SourceClick, At: now})
}

func (n *Normalizer) push(e Event) bool {
	if n.queue.Push(e) {
		return true
	}
	n.log.Warn("input queue full, event dropped",
		zap.Stringer("kind", e.Kind),
		zap.Stringer("source", e.Source),
		zap.Int64("dropped", n.queue.Dropped()))
	return false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
