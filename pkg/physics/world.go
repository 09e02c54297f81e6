// Package physics 实现迷宫所需的最小刚体模拟
//
// 只支持球体与轴对齐盒子：一个动态小球在静态地板和墙体之间滚动。
// 世界按固定顺序积分和求解，给定相同的 dt 序列结果完全确定。
package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrBodyExists 刚体已经在世界中
	ErrBodyExists = errors.New("body already in world")
	// ErrUnknownBody 刚体不在世界中
	ErrUnknownBody = errors.New("body not in world")
)

// Config 物理世界配置
type Config struct {
	Gravity mgl64.Vec3
	// SolverIterations 每个子步的接触求解迭代次数
	SolverIterations int
	// MaxSubStep 单个子步最大时长（秒），0 表示整个 dt 一步完成
	MaxSubStep float64
	// Broadphase 为 nil 时使用 NaiveBroadphase
	Broadphase Broadphase
}

// DefaultConfig 返回默认配置：重力 (0,0,-9)，朴素粗检测，10 次迭代
func DefaultConfig() Config {
	return Config{
		Gravity:          mgl64.Vec3{0, 0, -9},
		SolverIterations: 10,
		Broadphase:       NaiveBroadphase{},
	}
}

// maxSubSteps 限制单次 Step 拆分出的子步数量
const maxSubSteps = 32

// World 物理世界
type World struct {
	cfg    Config
	bodies []*Body
	pairs  []Pair
	// support 本子步内被地面支撑的球体及其接触法线，每个子步清空后复用
	support map[*Body]mgl64.Vec3
}

// NewWorld 创建物理世界
//
// 参数:
//   - cfg: 世界配置
//
// 返回:
//   - *World: 物理世界
//   - error: 配置无效时返回错误
func NewWorld(cfg Config) (*World, error) {
	if cfg.SolverIterations <= 0 {
		return nil, fmt.Errorf("solver iterations must be > 0, got %d", cfg.SolverIterations)
	}
	if !finiteVec(cfg.Gravity) {
		return nil, fmt.Errorf("gravity must be finite, got %v", cfg.Gravity)
	}
	if cfg.MaxSubStep < 0 || math.IsNaN(cfg.MaxSubStep) {
		return nil, fmt.Errorf("max sub step must be >= 0, got %g", cfg.MaxSubStep)
	}
	if cfg.Broadphase == nil {
		cfg.Broadphase = NaiveBroadphase{}
	}
	return &World{cfg: cfg, support: make(map[*Body]mgl64.Vec3)}, nil
}

// AddBody 把刚体加入世界
func (w *World) AddBody(b *Body) error {
	if b.world == w {
		return ErrBodyExists
	}
	if b.world != nil {
		return fmt.Errorf("%w: owned by another world", ErrBodyExists)
	}
	b.world = w
	w.bodies = append(w.bodies, b)
	return nil
}

// RemoveBody 把刚体移出世界，刚体状态保持不变以便再次加入
func (w *World) RemoveBody(b *Body) error {
	if b.world != w {
		return ErrUnknownBody
	}
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	b.world = nil
	return nil
}

// Contains 刚体是否在本世界中
func (w *World) Contains(b *Body) bool {
	return b.world == w
}

// Len 世界中的刚体数量
func (w *World) Len() int {
	return len(w.bodies)
}

// Step 推进模拟 dt 秒
//
// dt 为非正数或非有限值时不做任何事，调用方负责在传入前夹紧。
func (w *World) Step(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return
	}

	steps := 1
	if w.cfg.MaxSubStep > 0 && dt > w.cfg.MaxSubStep {
		steps = int(math.Ceil(dt / w.cfg.MaxSubStep))
		if steps > maxSubSteps {
			steps = maxSubSteps
		}
	}
	h := dt / float64(steps)
	for i := 0; i < steps; i++ {
		w.substep(h)
	}
}

func (w *World) substep(h float64) {
	// 1. 半隐式欧拉：先速度后位置
	for _, b := range w.bodies {
		if b.IsStatic() {
			continue
		}
		b.Velocity = b.Velocity.Add(w.cfg.Gravity.Mul(h))
		b.Position = b.Position.Add(b.Velocity.Mul(h))
	}

	// 2. 迭代求解接触
	w.pairs = w.cfg.Broadphase.Pairs(w.bodies, w.pairs[:0])
	clear(w.support)
	for iter := 0; iter < w.cfg.SolverIterations; iter++ {
		resolved := false
		for _, p := range w.pairs {
			c, ok := collide(p.A, p.B)
			if !ok {
				continue
			}
			resolveContact(c)
			resolved = true
			if c.Normal.Z() > 0.5 {
				w.support[c.Dynamic] = c.Normal
			}
		}
		if !resolved {
			break
		}
	}

	// 3. 滚动：接触面支撑的球体角速度满足无滑动条件，其余保持
	for _, b := range w.bodies {
		if b.IsStatic() || b.Shape.Kind != ShapeSphere || b.Shape.Radius <= 0 {
			continue
		}
		if n, ok := w.support[b]; ok {
			b.AngularVelocity = n.Cross(b.Velocity).Mul(1 / b.Shape.Radius)
		}
		b.Quaternion = integrateQuat(b.Quaternion, b.AngularVelocity, h)
	}
}

// integrateQuat q' = q + 0.5 * ω * q * h
func integrateQuat(q mgl64.Quat, omega mgl64.Vec3, h float64) mgl64.Quat {
	if omega.Len() == 0 {
		return q
	}
	spin := mgl64.Quat{W: 0, V: omega}.Mul(q).Scale(0.5 * h)
	return q.Add(spin).Normalize()
}

func finiteVec(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
