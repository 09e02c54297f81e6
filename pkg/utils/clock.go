package utils

import "time"

// Clock 单调毫秒时钟
// 输入冷却和胜利横幅都以它为时间基准
type Clock interface {
	NowMillis() float64
}

// MonotonicClock 基于进程启动时刻的单调时钟
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock 创建从 0 开始计时的时钟
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// NowMillis 返回自创建以来经过的毫秒数
func (c *MonotonicClock) NowMillis() float64 {
	// time.Since 使用单调读数，不受系统时间调整影响
	return float64(time.Since(c.start).Nanoseconds()) / 1e6
}

// ManualClock 手动推进的时钟，用于测试和无窗口模拟
type ManualClock struct {
	now float64
}

// NewManualClock 创建起始于 start 毫秒的时钟
func NewManualClock(start float64) *ManualClock {
	return &ManualClock{now: start}
}

// NowMillis 返回当前时间
func (c *ManualClock) NowMillis() float64 {
	return c.now
}

// Advance 向前推进 ms 毫秒，负值被忽略
func (c *ManualClock) Advance(ms float64) {
	if ms > 0 {
		c.now += ms
	}
}

// Set 直接设置当前时间，不允许回退
func (c *ManualClock) Set(ms float64) {
	if ms > c.now {
		c.now = ms
	}
}
