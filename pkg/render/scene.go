// Package render 维护迷宫的可视场景图并用 ebiten 绘制
//
// 场景中的节点只保存变换和外观，由 RenderSyncSystem 每帧从物理刚体复制位姿。
package render

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// NodeKind 节点几何类型
type NodeKind int

const (
	// NodeBox 盒子（地板、墙、终点）
	NodeBox NodeKind = iota
	// NodeSphere 球体（小球）
	NodeSphere
)

// 绘制层级，数值小的先绘制
const (
	LayerFloor  = 0
	LayerFinish = 1
	LayerWall   = 2
	LayerBall   = 3
)

// Node 场景节点
type Node struct {
	Name string
	Kind NodeKind

	Position   mgl64.Vec3
	Quaternion mgl64.Quat

	// HalfExtents 盒子半尺寸
	HalfExtents mgl64.Vec3
	// Radius 球体半径
	Radius float64

	Color color.RGBA
	Layer int
	// CastShadow 是否在地板上投影
	CastShadow bool
}

// NewBoxNode 创建盒子节点
func NewBoxNode(name string, halfExtents mgl64.Vec3, clr color.RGBA, layer int) *Node {
	return &Node{
		Name:        name,
		Kind:        NodeBox,
		Quaternion:  mgl64.QuatIdent(),
		HalfExtents: halfExtents,
		Color:       clr,
		Layer:       layer,
	}
}

// NewSphereNode 创建球体节点
func NewSphereNode(name string, radius float64, clr color.RGBA) *Node {
	return &Node{
		Name:       name,
		Kind:       NodeSphere,
		Quaternion: mgl64.QuatIdent(),
		Radius:     radius,
		Color:      clr,
		Layer:      LayerBall,
		CastShadow: true,
	}
}

// Scene 场景图
type Scene struct {
	nodes []*Node
}

// NewScene 创建空场景
func NewScene() *Scene {
	return &Scene{}
}

// Add 添加节点，已存在时返回 false
func (s *Scene) Add(n *Node) bool {
	if s.Contains(n) {
		return false
	}
	s.nodes = append(s.nodes, n)
	return true
}

// Remove 移除节点，不存在时返回 false
func (s *Scene) Remove(n *Node) bool {
	for i, other := range s.nodes {
		if other == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			return true
		}
	}
	return false
}

// Contains 节点是否在场景中
func (s *Scene) Contains(n *Node) bool {
	for _, other := range s.nodes {
		if other == n {
			return true
		}
	}
	return false
}

// Len 节点数量
func (s *Scene) Len() int {
	return len(s.nodes)
}

// DrawOrder 按层级排序的节点列表，同层保持加入顺序
func (s *Scene) DrawOrder() []*Node {
	out := make([]*Node, len(s.nodes))
	copy(out, s.nodes)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Layer < out[j].Layer })
	return out
}
