// Package input 把各种原始输入（指针、设备方向、设备加速度、点击）
// 归一化为倾斜向量和切换请求，以事件形式投递到每帧消费一次的队列。
package input

import "sync/atomic"

// EventKind 输入事件类型
type EventKind int

const (
	// EventTiltChanged 倾斜向量更新
	EventTiltChanged EventKind = iota
	// EventToggleRequested 请求切换难度模式
	EventToggleRequested
)

// String 返回事件类型名称
func (k EventKind) String() string {
	switch k {
	case EventTiltChanged:
		return "tilt"
	case EventToggleRequested:
		return "toggle"
	default:
		return "unknown"
	}
}

// Source 事件来源
type Source int

const (
	SourcePointer Source = iota
	SourceClick
	SourceOrientation
	SourceMotion
)

// String 返回来源名称
func (s Source) String() string {
	switch s {
	case SourcePointer:
		return "pointer"
	case SourceClick:
		return "click"
	case SourceOrientation:
		return "orientation"
	case SourceMotion:
		return "motion"
	default:
		return "unknown"
	}
}

// Event 输入事件
type Event struct {
	Kind   EventKind
	Tilt   TiltVector // 仅 EventTiltChanged 有效
	Source Source
	// At 事件产生时的会话时钟（毫秒）
	At float64
}

// DefaultQueueCapacity 默认队列容量
const DefaultQueueCapacity = 256

// Queue 多生产者、单消费者的事件队列
//
// 生产者可以在任意 goroutine 上 Push；只有帧循环调用 Drain。
type Queue struct {
	ch      chan Event
	dropped atomic.Int64
}

// NewQueue 创建事件队列，capacity <= 0 时使用默认容量
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{ch: make(chan Event, capacity)}
}

// Push 非阻塞投递事件
// 队列已满时丢弃事件并返回 false
func (q *Queue) Push(e Event) bool {
	select {
	case q.ch <- e:
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Drain 按投递顺序取出当前所有事件
//
// 参数:
//   - fn: 每个事件的处理函数
//
// 返回:
//   - int: 处理的事件数
func (q *Queue) Drain(fn func(Event)) int {
	n := 0
	for {
		select {
		case e := <-q.ch:
			fn(e)
			n++
		default:
			return n
		}
	}
}

// Len 队列中待处理的事件数
func (q *Queue) Len() int {
	return len(q.ch)
}

// Dropped 因队列满而丢弃的事件总数
func (q *Queue) Dropped() int64 {
	return q.dropped.Load()
}
