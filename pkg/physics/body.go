package physics

import "github.com/go-gl/mathgl/mgl64"

// ShapeKind 碰撞形状类型
type ShapeKind int

const (
	// ShapeSphere 球体
	ShapeSphere ShapeKind = iota
	// ShapeBox 轴对齐盒子
	ShapeBox
)

// String 返回形状名称
func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	default:
		return "unknown"
	}
}

// Shape 碰撞形状
// 盒子始终与世界坐标轴对齐，迷宫中的墙体和地板都不旋转
type Shape struct {
	Kind        ShapeKind
	Radius      float64
	HalfExtents mgl64.Vec3
}

// Sphere 创建球体形状
func Sphere(radius float64) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

// Box 创建盒子形状
func Box(halfExtents mgl64.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents}
}

// Body 刚体
//
// Mass 为 0 的刚体是静态刚体，不受重力影响也不会被碰撞推动。
// Position / Velocity / Quaternion 可以被外部直接修改（重生、设置速度）。
type Body struct {
	Mass            float64
	Shape           Shape
	Position        mgl64.Vec3
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	Quaternion      mgl64.Quat

	world *World
}

// NewBody 创建刚体，初始朝向为单位四元数
func NewBody(mass float64, shape Shape, position mgl64.Vec3) *Body {
	return &Body{
		Mass:       mass,
		Shape:      shape,
		Position:   position,
		Quaternion: mgl64.QuatIdent(),
	}
}

// IsStatic 是否为静态刚体
func (b *Body) IsStatic() bool {
	return b.Mass <= 0
}

// InWorld 刚体当前是否在某个物理世界中
func (b *Body) InWorld() bool {
	return b.world != nil
}

// Reset 把刚体放到指定位置并清空线速度和角速度
func (b *Body) Reset(position mgl64.Vec3) {
	b.Position = position
	b.Velocity = mgl64.Vec3{}
	b.AngularVelocity = mgl64.Vec3{}
}
