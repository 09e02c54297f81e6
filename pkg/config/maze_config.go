package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/decker502/tiltmaze/pkg/embedded"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// ErrInvalidMaze 迷宫配置校验失败
var ErrInvalidMaze = errors.New("invalid maze config")

// DefaultMazePath 默认迷宫配置路径
const DefaultMazePath = "data/maze.yaml"

// Vec3 YAML 中的三维向量，写作 [x, y, z]
type Vec3 [3]float64

// Mgl 转换为 mgl64.Vec3
func (v Vec3) Mgl() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

func (v Vec3) finite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// MazeConfig 迷宫布局
//
// 描述小球、地板、墙体和终点区域。所有坐标以地板中心为原点，Z 轴向上。
//
// 配置文件位置: data/maze.yaml
type MazeConfig struct {
	Ball  BallConfig `yaml:"ball"`
	Floor BoxConfig  `yaml:"floor"`

	// WallDepth 墙体物理半深度
	WallDepth float64 `yaml:"wallDepth"`
	// WallVisualDepth 墙体可视半深度（可视模型比碰撞盒矮）
	WallVisualDepth float64 `yaml:"wallVisualDepth"`

	// Boundary 四周边界墙，困难模式下移除
	Boundary []WallConfig `yaml:"boundary"`
	// Walls 迷宫内部固定墙，始终存在
	Walls []WallConfig `yaml:"walls"`

	Finish FinishConfig `yaml:"finish"`
}

// BallConfig 小球配置
type BallConfig struct {
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
	// Start 出生点，坠落或胜利结束后小球回到此处
	Start Vec3 `yaml:"start"`
}

// BoxConfig 静态盒子
type BoxConfig struct {
	Position    Vec3 `yaml:"position"`
	HalfExtents Vec3 `yaml:"halfExtents"`
}

// WallConfig 单面墙，位于 z=0 平面
type WallConfig struct {
	HalfWidth  float64 `yaml:"halfWidth"`
	HalfHeight float64 `yaml:"halfHeight"`
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
}

// FinishConfig 终点区域
type FinishConfig struct {
	Position Vec3    `yaml:"position"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	// Depth 仅用于绘制
	Depth float64 `yaml:"depth"`
}

// LoadMazeConfig 加载迷宫配置
//
// 参数:
//   - path: 配置文件路径（如 "data/maze.yaml"），优先从嵌入资源读取
//
// 返回:
//   - *MazeConfig: 加载成功后的配置结构
//   - error: 读取、解析或校验失败时返回错误
func LoadMazeConfig(path string) (*MazeConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read maze config %s: %w", path, err)
	}
	cfg, err := ParseMazeConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseMazeConfig 从 YAML 内容解析并校验迷宫配置
func ParseMazeConfig(data []byte) (*MazeConfig, error) {
	var cfg MazeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse maze config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验迷宫配置
//
// 检查：
//   - 小球半径、质量为正
//   - 所有尺寸为正、坐标有限
//   - 至少有一面边界墙
//   - 终点宽高为正
func (c *MazeConfig) Validate() error {
	if c.Ball.Radius <= 0 {
		return fmt.Errorf("%w: ball radius must be > 0, got %g", ErrInvalidMaze, c.Ball.Radius)
	}
	if c.Ball.Mass <= 0 {
		return fmt.Errorf("%w: ball mass must be > 0, got %g", ErrInvalidMaze, c.Ball.Mass)
	}
	if !c.Ball.Start.finite() {
		return fmt.Errorf("%w: ball start must be finite", ErrInvalidMaze)
	}
	for i, h := range c.Floor.HalfExtents {
		if h <= 0 {
			return fmt.Errorf("%w: floor halfExtents[%d] must be > 0, got %g", ErrInvalidMaze, i, h)
		}
	}
	if c.WallDepth <= 0 || c.WallVisualDepth <= 0 {
		return fmt.Errorf("%w: wallDepth and wallVisualDepth must be > 0", ErrInvalidMaze)
	}
	if len(c.Boundary) == 0 {
		return fmt.Errorf("%w: at least one boundary wall is required", ErrInvalidMaze)
	}
	for i, w := range c.Boundary {
		if err := w.validate(); err != nil {
			return fmt.Errorf("%w: boundary[%d]: %v", ErrInvalidMaze, i, err)
		}
	}
	for i, w := range c.Walls {
		if err := w.validate(); err != nil {
			return fmt.Errorf("%w: walls[%d]: %v", ErrInvalidMaze, i, err)
		}
	}
	if c.Finish.Width <= 0 || c.Finish.Height <= 0 {
		return fmt.Errorf("%w: finish width/height must be > 0", ErrInvalidMaze)
	}
	if !c.Finish.Position.finite() {
		return fmt.Errorf("%w: finish position must be finite", ErrInvalidMaze)
	}
	return nil
}

func (w WallConfig) validate() error {
	if w.HalfWidth <= 0 || w.HalfHeight <= 0 {
		return fmt.Errorf("half extents must be > 0, got (%g, %g)", w.HalfWidth, w.HalfHeight)
	}
	if math.IsNaN(w.X) || math.IsNaN(w.Y) || math.IsInf(w.X, 0) || math.IsInf(w.Y, 0) {
		return fmt.Errorf("position must be finite")
	}
	return nil
}
