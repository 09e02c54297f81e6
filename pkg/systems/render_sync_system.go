package systems

import (
	"github.com/decker502/tiltmaze/pkg/components"
	"github.com/decker502/tiltmaze/pkg/ecs"
	"github.com/decker502/tiltmaze/pkg/physics"
	"github.com/decker502/tiltmaze/pkg/render"
)

// SyncTransform 把刚体的位置和朝向复制到可视节点
func SyncTransform(body *physics.Body, node *render.Node) {
	node.Position = body.Position
	node.Quaternion = body.Quaternion
}

// RenderSyncSystem 每帧把动态刚体和刚切换存在状态的墙同步到场景图
type RenderSyncSystem struct {
	entityManager *ecs.EntityManager
}

// NewRenderSyncSystem 创建渲染同步系统
func NewRenderSyncSystem(em *ecs.EntityManager) *RenderSyncSystem {
	return &RenderSyncSystem{entityManager: em}
}

// Update 同步变换
// 返回本帧同步的实体数
func (s *RenderSyncSystem) Update() int {
	synced := 0
	entities := ecs.GetEntitiesWith2[*components.BodyComponent, *components.MeshComponent](s.entityManager)

	for _, id := range entities {
		body, _ := ecs.GetComponent[*components.BodyComponent](s.entityManager, id)
		mesh, _ := ecs.GetComponent[*components.MeshComponent](s.entityManager, id)

		if presence, ok := ecs.GetComponent[*components.PresenceComponent](s.entityManager, id); ok && presence.Dirty {
			presence.Dirty = false
			SyncTransform(body.Body, mesh.Node)
			synced++
			continue
		}

		// 静态刚体从不移动
		if body.Body.IsStatic() {
			continue
		}
		SyncTransform(body.Body, mesh.Node)
		synced++
	}
	return synced
}
