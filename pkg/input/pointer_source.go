package input

import "github.com/decker502/tiltmaze/pkg/utils"

// PointerSource 每帧轮询 ebiten 指针状态
//
// 点击或触摸请求切换；可悬停指针的位置映射为倾斜。
type PointerSource struct {
	n *Normalizer
	// CanHover 为 false 时（触屏）不把指针位置当作倾斜
	CanHover bool
}

// NewPointerSource 创建指针输入源
func NewPointerSource(n *Normalizer) *PointerSource {
	return &PointerSource{n: n, CanHover: utils.CanHover()}
}

// Poll 读取本帧指针输入
//
// 参数:
//   - now: 会话时钟（毫秒）
//   - width, height: 逻辑屏幕尺寸
func (p *PointerSource) Poll(now float64, width, height int) {
	if clicked, _, _ := utils.IsJustTouchedOrClicked(); clicked {
		p.n.Click(now)
	}
	if !p.CanHover {
		return
	}
	x, y := utils.GetPointerPosition()
	nx, ny := utils.NormalizePointer(x, y, width, height)
	p.n.PointerMoved(nx, ny, now)
}
