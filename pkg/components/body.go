package components

import (
	"github.com/decker502/tiltmaze/pkg/physics"
	"github.com/decker502/tiltmaze/pkg/render"
)

// BodyComponent 实体对应的物理刚体句柄
type BodyComponent struct {
	Body *physics.Body
}

// MeshComponent 实体对应的可视节点句柄
type MeshComponent struct {
	Node *render.Node
}

// PresenceComponent 实体是否在物理世界和场景中
//
// 只有边界墙会在运行期切换存在状态；切换时只翻转标志、增删句柄，实体本身保留。
type PresenceComponent struct {
	Present bool
	// Dirty 本帧存在状态刚发生变化，等待渲染同步
	Dirty bool
}
