package input

import "sync"

// ShakeGate 摇晃切换的冷却闸门
//
// 触发后关闭，经过 cooldown 毫秒后重新打开。
// 重新打开用截止时间表示，不使用定时器 goroutine。
type ShakeGate struct {
	mu         sync.Mutex
	cooldownMs float64
	rearmAt    float64
	fired      bool
}

// NewShakeGate 创建处于打开状态的闸门
func NewShakeGate(cooldownMs float64) *ShakeGate {
	return &ShakeGate{cooldownMs: cooldownMs}
}

// Armed now 时刻闸门是否打开
func (g *ShakeGate) Armed(now float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.armedLocked(now)
}

func (g *ShakeGate) armedLocked(now float64) bool {
	return !g.fired || now >= g.rearmAt
}

// TryFire 闸门打开时关闭它并返回 true
func (g *ShakeGate) TryFire(now float64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.armedLocked(now) {
		return false
	}
	g.fired = true
	g.rearmAt = now + g.cooldownMs
	return true
}
