package entities

import (
	"fmt"
	"image/color"

	"github.com/decker502/tiltmaze/pkg/components"
	"github.com/decker502/tiltmaze/pkg/config"
	"github.com/decker502/tiltmaze/pkg/ecs"
	"github.com/decker502/tiltmaze/pkg/physics"
	"github.com/decker502/tiltmaze/pkg/render"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ballColor   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	floorColor  = color.RGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}
	wallColor   = color.RGBA{R: 0x0f, G: 0x11, B: 0x88, A: 0xff}
	finishColor = color.RGBA{R: 0x2a, G: 0x7f, B: 0x33, A: 0x7f} // 0x55ff66 半透明（预乘）
)

// World 实体工厂需要的物理世界能力
type World interface {
	AddBody(b *physics.Body) error
}

// Maze 迷宫中各实体的ID
type Maze struct {
	Ball     ecs.EntityID
	Floor    ecs.EntityID
	Finish   ecs.EntityID
	Boundary []ecs.EntityID
	Walls    []ecs.EntityID
}

// BuildMaze 根据配置创建完整迷宫
//
// 参数:
//   - em: 实体管理器
//   - world: 物理世界
//   - scene: 场景图
//   - maze: 迷宫配置
//
// 返回:
//   - *Maze: 创建的实体ID集合
//   - error: 任一实体创建失败时返回错误
func BuildMaze(em *ecs.EntityManager, world World, scene *render.Scene, maze *config.MazeConfig) (*Maze, error) {
	if em == nil || world == nil || scene == nil || maze == nil {
		return nil, fmt.Errorf("entity manager, world, scene and maze config are required")
	}

	m := &Maze{}
	var err error

	m.Floor, err = NewWallEntity(em, world, scene, components.WallGroupFixed, "floor",
		maze.Floor.Position.Mgl(), maze.Floor.HalfExtents.Mgl(), maze.Floor.HalfExtents.Mgl())
	if err != nil {
		return nil, fmt.Errorf("create floor: %w", err)
	}

	m.Ball, err = NewBallEntity(em, world, scene, maze.Ball)
	if err != nil {
		return nil, fmt.Errorf("create ball: %w", err)
	}

	for i, w := range maze.Boundary {
		id, err := newMazeWall(em, world, scene, components.WallGroupBoundary, fmt.Sprintf("boundary-%d", i), w, maze)
		if err != nil {
			return nil, fmt.Errorf("create boundary wall %d: %w", i, err)
		}
		m.Boundary = append(m.Boundary, id)
	}

	for i, w := range maze.Walls {
		id, err := newMazeWall(em, world, scene, components.WallGroupFixed, fmt.Sprintf("wall-%d", i), w, maze)
		if err != nil {
			return nil, fmt.Errorf("create wall %d: %w", i, err)
		}
		m.Walls = append(m.Walls, id)
	}

	m.Finish = NewFinishZoneEntity(em, scene, maze.Finish)
	return m, nil
}

func newMazeWall(em *ecs.EntityManager, world World, scene *render.Scene, group components.WallGroup, name string, w config.WallConfig, maze *config.MazeConfig) (ecs.EntityID, error) {
	center := mgl64.Vec3{w.X, w.Y, 0}
	physHalf := mgl64.Vec3{w.HalfWidth, w.HalfHeight, maze.WallDepth}
	visualHalf := mgl64.Vec3{w.HalfWidth, w.HalfHeight, maze.WallVisualDepth}
	return NewWallEntity(em, world, scene, group, name, center, physHalf, visualHalf)
}

// NewBallEntity 创建小球实体：动态球体刚体 + 球体节点
func NewBallEntity(em *ecs.EntityManager, world World, scene *render.Scene, cfg config.BallConfig) (ecs.EntityID, error) {
	body := physics.NewBody(cfg.Mass, physics.Sphere(cfg.Radius), cfg.Start.Mgl())
	if err := world.AddBody(body); err != nil {
		return 0, err
	}

	node := render.NewSphereNode("ball", cfg.Radius, ballColor)
	node.Position = body.Position
	scene.Add(node)

	id := em.CreateEntity()
	em.AddComponent(id, &components.BallComponent{Radius: cfg.Radius, Start: cfg.Start.Mgl()})
	em.AddComponent(id, &components.BodyComponent{Body: body})
	em.AddComponent(id, &components.MeshComponent{Node: node})
	em.AddComponent(id, &components.PresenceComponent{Present: true})
	return id, nil
}

// NewWallEntity 创建静态墙体实体
//
// 参数:
//   - group: 墙体分组，边界墙可在运行期移除
//   - center: 刚体和节点的中心位置
//   - physHalf: 碰撞盒半尺寸
//   - visualHalf: 可视盒子半尺寸
func NewWallEntity(
	em *ecs.EntityManager,
	world World,
	scene *render.Scene,
	group components.WallGroup,
	name string,
	center, physHalf, visualHalf mgl64.Vec3,
) (ecs.EntityID, error) {
	body := physics.NewBody(0, physics.Box(physHalf), center)
	if err := world.AddBody(body); err != nil {
		return 0, err
	}

	clr, layer := wallColor, render.LayerWall
	if name == "floor" {
		clr, layer = floorColor, render.LayerFloor
	}
	node := render.NewBoxNode(name, visualHalf, clr, layer)
	node.Position = center
	scene.Add(node)

	id := em.CreateEntity()
	em.AddComponent(id, &components.WallComponent{Group: group, HalfExtents: physHalf})
	em.AddComponent(id, &components.BodyComponent{Body: body})
	em.AddComponent(id, &components.MeshComponent{Node: node})
	em.AddComponent(id, &components.PresenceComponent{Present: true})
	return id, nil
}

// NewFinishZoneEntity 创建终点区域
// 可视盒子覆盖判定矩形 (Position, Position+Size)
func NewFinishZoneEntity(em *ecs.EntityManager, scene *render.Scene, cfg config.FinishConfig) ecs.EntityID {
	pos := cfg.Position.Mgl()
	half := mgl64.Vec3{cfg.Width / 2, cfg.Height / 2, cfg.Depth / 2}

	node := render.NewBoxNode("finish", half, finishColor, render.LayerFinish)
	node.Position = pos.Add(mgl64.Vec3{half.X(), half.Y(), 0})
	scene.Add(node)

	id := em.CreateEntity()
	em.AddComponent(id, &components.FinishZoneComponent{Position: pos, Width: cfg.Width, Height: cfg.Height})
	em.AddComponent(id, &components.MeshComponent{Node: node})
	return id
}
