package components

import "github.com/go-gl/mathgl/mgl64"

// WallGroup 墙体分组
type WallGroup int

const (
	// WallGroupFixed 固定墙（含地板），始终存在
	WallGroupFixed WallGroup = iota
	// WallGroupBoundary 边界墙，困难模式下移除
	WallGroupBoundary
)

// String 返回分组名称
func (g WallGroup) String() string {
	switch g {
	case WallGroupFixed:
		return "fixed"
	case WallGroupBoundary:
		return "boundary"
	default:
		return "unknown"
	}
}

// WallComponent 静态墙体
type WallComponent struct {
	Group       WallGroup
	HalfExtents mgl64.Vec3
}
