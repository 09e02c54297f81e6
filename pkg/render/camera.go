package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera 透视相机，位于 Position 垂直向下（-Z）观察
type Camera struct {
	Position mgl64.Vec3
	// FovY 垂直视场角（弧度）
	FovY float64
	// Near 近裁剪距离
	Near float64
}

// NewCamera 创建位于 (0, 0, z) 的相机
//
// 参数:
//   - z: 相机高度
//   - fovDegrees: 垂直视场角（度）
func NewCamera(z, fovDegrees float64) *Camera {
	return &Camera{
		Position: mgl64.Vec3{0, 0, z},
		FovY:     mgl64.DegToRad(fovDegrees),
		Near:     0.01,
	}
}

// focal 屏幕高度为 height 时的焦距（像素）
func (c *Camera) focal(height int) float64 {
	return float64(height) / 2 / math.Tan(c.FovY/2)
}

// Project 把世界坐标投影到屏幕
//
// 返回:
//   - sx, sy: 屏幕坐标（Y 向下）
//   - scale: 该深度处 1 个世界单位对应的像素数
//   - ok: 点在近裁剪面之后时为 false
func (c *Camera) Project(p mgl64.Vec3, width, height int) (sx, sy, scale float64, ok bool) {
	depth := c.Position.Z() - p.Z()
	if depth < c.Near {
		return 0, 0, 0, false
	}
	scale = c.focal(height) / depth
	sx = float64(width)/2 + (p.X()-c.Position.X())*scale
	sy = float64(height)/2 - (p.Y()-c.Position.Y())*scale
	return sx, sy, scale, true
}
