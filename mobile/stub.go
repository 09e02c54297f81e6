//go:build !mobile

// 桌面构建时 mobile 包只剩这个文件。
// OnDeviceOrientation / OnDeviceMotion 等传感器回调需要 -tags mobile（ebitenmobile bind 会自动带上）。
package mobile

// Dummy 供 ebitenmobile 绑定导出，桌面构建下为空实现
func Dummy() {}
