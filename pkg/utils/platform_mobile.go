//go:build mobile

package utils

// IsMobile 检测当前是否在移动设备上运行
// 移动端编译时返回 true
func IsMobile() bool {
	return true
}

// CanHover 触屏没有悬停光标
func CanHover() bool {
	return false
}
