package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个可更新、可绘制的游戏场景
type Scene interface {
	// Update 推进场景逻辑
	// now 为会话时钟（毫秒），场景自行计算帧间隔
	Update(now float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}
