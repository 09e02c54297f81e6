package components

import "github.com/go-gl/mathgl/mgl64"

// FinishZoneComponent 终点区域
// 没有物理刚体，通过坐标比较判定
type FinishZoneComponent struct {
	Position mgl64.Vec3
	Width    float64
	Height   float64
}

// Contains 点 (x, y) 是否严格位于 (Position, Position+Size) 开区间内
func (f *FinishZoneComponent) Contains(x, y float64) bool {
	return x > f.Position.X() && x < f.Position.X()+f.Width &&
		y > f.Position.Y() && y < f.Position.Y()+f.Height
}
