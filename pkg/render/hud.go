package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	bannerText  = "YOU WIN!"
	bannerScale = 4
	// ebitenutil 调试字体单个字符约 6x16 像素
	debugGlyphWidth  = 6
	debugGlyphHeight = 16
)

// HUD 抬头显示：模式标签、操作提示和胜利横幅
//
// HUD 实现 ShowWinBanner / HideWinBanner，作为胜利横幅的展示端订阅游戏状态。
type HUD struct {
	Visible bool

	bannerVisible bool
	bannerImage   *ebiten.Image
}

// NewHUD 创建 HUD
func NewHUD(visible bool) *HUD {
	return &HUD{Visible: visible}
}

// ShowWinBanner 显示胜利横幅
func (h *HUD) ShowWinBanner() {
	h.bannerVisible = true
}

// HideWinBanner 隐藏胜利横幅
func (h *HUD) HideWinBanner() {
	h.bannerVisible = false
}

// BannerVisible 横幅当前是否可见
func (h *HUD) BannerVisible() bool {
	return h.bannerVisible
}

// Draw 绘制 HUD
//
// 参数:
//   - screen: 目标图像
//   - mode: 当前模式名称
//   - hint: 操作提示
func (h *HUD) Draw(screen *ebiten.Image, mode, hint string) {
	// 横幅不受 HUD 开关影响
	if h.bannerVisible {
		h.drawBanner(screen)
	}
	if !h.Visible {
		return
	}
	ebitenutil.DebugPrintAt(screen, "MODE: "+mode, 8, 8)
	ebitenutil.DebugPrintAt(screen, hint, 8, screen.Bounds().Dy()-debugGlyphHeight-8)
}

func (h *HUD) drawBanner(screen *ebiten.Image) {
	tw := len(bannerText) * debugGlyphWidth
	if h.bannerImage == nil {
		h.bannerImage = ebiten.NewImage(tw, debugGlyphHeight)
		ebitenutil.DebugPrintAt(h.bannerImage, bannerText, 0, 0)
	}

	b := screen.Bounds()
	bw := float64(tw * bannerScale)
	bh := float64(debugGlyphHeight * bannerScale)
	x := (float64(b.Dx()) - bw) / 2
	y := (float64(b.Dy()) - bh) / 2

	vector.DrawFilledRect(screen, float32(x-16), float32(y-8), float32(bw+32), float32(bh+16), color.RGBA{R: 0x10, G: 0x40, B: 0x18, A: 0xc0}, true)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(bannerScale, bannerScale)
	op.GeoM.Translate(x, y)
	screen.DrawImage(h.bannerImage, op)
}
