// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的 data/ 目录。
//
// 未调用 Init() 时所有读取都回退到磁盘，cmd 工具和测试可以直接使用仓库中的 data/ 目录。
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化嵌入的文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 统一为正斜杠并去掉 "./" 前缀（embed.FS 使用正斜杠）
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// ReadFile 读取资源文件
//
// 已初始化且路径以 "data/" 开头时从嵌入文件系统读取，否则从磁盘读取。
//
// 参数:
//   - path: 资源路径（如 "data/maze.yaml"）
//
// 返回:
//   - []byte: 文件内容
//   - error: 读取失败时返回错误
func ReadFile(path string) ([]byte, error) {
	p := normalize(path)
	if initialized && strings.HasPrefix(p, "data/") {
		data, err := fs.ReadFile(dataFS, p)
		if err != nil {
			return nil, fmt.Errorf("read embedded %s: %w", p, err)
		}
		return data, nil
	}
	return os.ReadFile(path)
}

// Exists 检查资源文件是否存在
func Exists(path string) bool {
	p := normalize(path)
	if initialized && strings.HasPrefix(p, "data/") {
		_, err := fs.Stat(dataFS, p)
		return err == nil
	}
	_, err := os.Stat(path)
	return err == nil
}
