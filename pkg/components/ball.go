package components

import "github.com/go-gl/mathgl/mgl64"

// BallComponent 玩家操控的小球
type BallComponent struct {
	Radius float64
	// Start 重生点
	Start mgl64.Vec3
}
