package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ShadowPlane 接收投影的平面（地板顶面）
type ShadowPlane struct {
	Z          float64
	MinX, MinY float64
	MaxX, MaxY float64
}

// contains 点的水平投影是否落在平面内
func (p ShadowPlane) contains(pos mgl64.Vec3) bool {
	return pos.X() >= p.MinX && pos.X() <= p.MaxX && pos.Y() >= p.MinY && pos.Y() <= p.MaxY && pos.Z() >= p.Z
}

// Renderer 把场景绘制到 ebiten 屏幕
// 光源位于小球正上方，阴影垂直投在地板上
type Renderer struct {
	Background color.RGBA
	Shadow     *ShadowPlane
}

// NewRenderer 创建渲染器
func NewRenderer(shadow *ShadowPlane) *Renderer {
	return &Renderer{
		Background: color.RGBA{R: 0x1b, G: 0x1d, B: 0x2b, A: 0xff},
		Shadow:     shadow,
	}
}

// Render 绘制一帧
//
// 参数:
//   - screen: 目标图像
//   - scene: 场景图
//   - cam: 相机
func (r *Renderer) Render(screen *ebiten.Image, scene *Scene, cam *Camera) {
	screen.Fill(r.Background)
	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()

	for _, n := range scene.DrawOrder() {
		switch n.Kind {
		case NodeBox:
			r.drawBox(screen, n, cam, w, h)
		case NodeSphere:
			if n.CastShadow && r.Shadow != nil && r.Shadow.contains(n.Position) {
				r.drawShadow(screen, n, cam, w, h)
			}
			r.drawSphere(screen, n, cam, w, h)
		}
	}
}

// drawBox 先画底面（暗色）再画顶面，透视差形成侧壁
func (r *Renderer) drawBox(screen *ebiten.Image, n *Node, cam *Camera, w, h int) {
	half := n.HalfExtents
	bottom := n.Position.Sub(mgl64.Vec3{0, 0, half.Z()})
	top := n.Position.Add(mgl64.Vec3{0, 0, half.Z()})

	if x, y, rw, rh, ok := projectRect(cam, bottom, half, w, h); ok {
		vector.DrawFilledRect(screen, x, y, rw, rh, shade(n.Color, 0.55), true)
	}
	if x, y, rw, rh, ok := projectRect(cam, top, half, w, h); ok {
		vector.DrawFilledRect(screen, x, y, rw, rh, n.Color, true)
	}
}

func (r *Renderer) drawShadow(screen *ebiten.Image, n *Node, cam *Camera, w, h int) {
	p := mgl64.Vec3{n.Position.X(), n.Position.Y(), r.Shadow.Z}
	sx, sy, scale, ok := cam.Project(p, w, h)
	if !ok {
		return
	}
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(n.Radius*scale), color.RGBA{A: 0x60}, true)
}

// drawSphere 画球体、固定高光和随滚动旋转的标记点
func (r *Renderer) drawSphere(screen *ebiten.Image, n *Node, cam *Camera, w, h int) {
	sx, sy, scale, ok := cam.Project(n.Position, w, h)
	if !ok {
		return
	}
	radius := n.Radius * scale
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), shade(n.Color, 0.8), true)
	vector.DrawFilledCircle(screen, float32(sx-radius*0.25), float32(sy-radius*0.25), float32(radius*0.6), n.Color, true)

	marker := n.Quaternion.Rotate(mgl64.Vec3{0, 0, n.Radius})
	if marker.Z() < 0 {
		return
	}
	mx, my, _, ok := cam.Project(n.Position.Add(marker), w, h)
	if !ok {
		return
	}
	vector.DrawFilledCircle(screen, float32(mx), float32(my), float32(radius*0.2), color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}, true)
}

// projectRect 投影中心在 center、半尺寸为 half 的水平矩形
func projectRect(cam *Camera, center, half mgl64.Vec3, w, h int) (x, y, rw, rh float32, ok bool) {
	minP := mgl64.Vec3{center.X() - half.X(), center.Y() + half.Y(), center.Z()}
	maxP := mgl64.Vec3{center.X() + half.X(), center.Y() - half.Y(), center.Z()}
	x0, y0, _, ok0 := cam.Project(minP, w, h)
	x1, y1, _, ok1 := cam.Project(maxP, w, h)
	if !ok0 || !ok1 {
		return 0, 0, 0, 0, false
	}
	return float32(x0), float32(y0), float32(x1 - x0), float32(y1 - y0), true
}

// shade 按系数缩放颜色（保持预乘 alpha）
func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
