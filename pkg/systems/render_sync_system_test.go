package systems

import (
	"image/color"
	"testing"

	"github.com/decker502/tiltmaze/pkg/components"
	"github.com/decker502/tiltmaze/pkg/ecs"
	"github.com/decker502/tiltmaze/pkg/physics"
	"github.com/decker502/tiltmaze/pkg/render"
	"github.com/go-gl/mathgl/mgl64"
)

func addEntity(em *ecs.EntityManager, mass float64, pos mgl64.Vec3, presence *components.PresenceComponent) (*physics.Body, *render.Node) {
	body := physics.NewBody(mass, physics.Sphere(0.03), pos)
	node := render.NewSphereNode("n", 0.03, color.RGBA{A: 0xff})
	id := em.CreateEntity()
	em.AddComponent(id, &components.BodyComponent{Body: body})
	em.AddComponent(id, &components.MeshComponent{Node: node})
	if presence != nil {
		em.AddComponent(id, presence)
	}
	return body, node
}

func TestSyncTransform(t *testing.T) {
	body := physics.NewBody(1, physics.Sphere(0.03), mgl64.Vec3{0.1, 0.2, 0.3})
	body.Quaternion = mgl64.QuatRotate(1, mgl64.Vec3{0, 1, 0})
	node := render.NewSphereNode("ball", 0.03, color.RGBA{})

	SyncTransform(body, node)

	if node.Position != body.Position || node.Quaternion != body.Quaternion {
		t.Errorf("node transform not synced: %v %v", node.Position, node.Quaternion)
	}
}

func TestRenderSyncUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	ball, ballNode := addEntity(em, 10, mgl64.Vec3{}, nil)
	_, staticNode := addEntity(em, 0, mgl64.Vec3{}, &components.PresenceComponent{Present: true})
	dirty := &components.PresenceComponent{Present: false, Dirty: true}
	_, _ = addEntity(em, 0, mgl64.Vec3{}, dirty)

	ball.Position = mgl64.Vec3{0.1, 0, 0.08}
	staticNode.Position = mgl64.Vec3{9, 9, 9}

	sys := NewRenderSyncSystem(em)
	if n := sys.Update(); n != 2 {
		t.Errorf("synced %d entities, want 2 (ball + dirty wall)", n)
	}
	if ballNode.Position != ball.Position {
		t.Error("dynamic body should be synced")
	}
	if staticNode.Position != (mgl64.Vec3{9, 9, 9}) {
		t.Error("clean static body should be skipped")
	}
	if dirty.Dirty {
		t.Error("dirty flag should be cleared")
	}

	if n := sys.Update(); n != 1 {
		t.Errorf("second update synced %d, want 1", n)
	}
}
