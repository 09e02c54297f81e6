package game

// GameMode 难度模式
type GameMode int

const (
	// ModeNormal 边界墙存在
	ModeNormal GameMode = iota
	// ModeHardcore 边界墙被移除，小球可能掉出迷宫
	ModeHardcore
)

// String 返回模式名称
func (m GameMode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeHardcore:
		return "Hardcore"
	default:
		return "Unknown"
	}
}

// WinStatus 胜利状态
//
// Celebrating 期间跳过掉落和胜利检测，只能通过到期回到空闲。
type WinStatus struct {
	Celebrating bool
	// Expiry 庆祝结束时刻（会话时钟，毫秒）
	Expiry float64
}

// BannerListener 胜利横幅的展示端
type BannerListener interface {
	ShowWinBanner()
	HideWinBanner()
}
