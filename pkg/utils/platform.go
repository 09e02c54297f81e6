//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 强制移动模式的环境变量
const MobileEmulateEnv = "TILTMAZE_MOBILE_EMULATE"

// IsMobile 检测当前是否在移动设备上运行
// 桌面端编译时返回 false
// 可以通过设置环境变量 TILTMAZE_MOBILE_EMULATE=1 强制启用移动模式（用于本地调试）
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}

// CanHover 指针能否悬停（有不按下也能移动的光标）
// 只有可悬停设备才把指针位置映射为倾斜
func CanHover() bool {
	return !IsMobile()
}
