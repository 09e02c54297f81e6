package config

import (
	"fmt"

	"github.com/decker502/tiltmaze/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultGameConfigPath 默认游戏调参配置路径
const DefaultGameConfigPath = "data/game.yaml"

// GameConfig 游戏调参配置
//
// 配置文件位置: data/game.yaml
type GameConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Tilt    TiltConfig    `yaml:"tilt"`
	Rules   RulesConfig   `yaml:"rules"`
	Shake   ShakeConfig   `yaml:"shake"`
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
}

// PhysicsConfig 物理世界参数
type PhysicsConfig struct {
	Gravity          Vec3 `yaml:"gravity"`
	SolverIterations int  `yaml:"solverIterations"`
	// MaxSubStep 单个子步最大时长（秒），0 表示不拆分
	MaxSubStep float64 `yaml:"maxSubStep"`
	// MaxFrameDt 单帧 dt 上限（秒），窗口失焦恢复后的长帧按此截断，0 表示不截断
	MaxFrameDt float64 `yaml:"maxFrameDt"`
}

// TiltConfig 倾斜输入参数
type TiltConfig struct {
	PointerRange    float64 `yaml:"pointerRange"`
	VelocityDivisor float64 `yaml:"velocityDivisor"`
}

// RulesConfig 胜负判定参数
type RulesConfig struct {
	FallOutZ      float64 `yaml:"fallOutZ"`
	CelebrationMs float64 `yaml:"celebrationMs"`
}

// ShakeConfig 摇一摇参数
type ShakeConfig struct {
	Threshold  float64 `yaml:"threshold"`
	CooldownMs float64 `yaml:"cooldownMs"`
}

// WindowConfig 窗口参数
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// CameraConfig 相机参数：相机位于 (0, 0, Z) 垂直向下看
type CameraConfig struct {
	Z          float64 `yaml:"z"`
	FovDegrees float64 `yaml:"fovDegrees"`
}

// DefaultGameConfig 返回默认调参
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Physics: PhysicsConfig{
			Gravity:          Vec3{0, 0, -9},
			SolverIterations: 10,
			MaxSubStep:       1.0 / 120.0,
			MaxFrameDt:       0.1,
		},
		Tilt: TiltConfig{
			PointerRange:    30,
			VelocityDivisor: 20,
		},
		Rules: RulesConfig{
			FallOutZ:      -0.5,
			CelebrationMs: 2000,
		},
		Shake: ShakeConfig{
			Threshold:  60,
			CooldownMs: 1000,
		},
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Tilt Maze",
		},
		Camera: CameraConfig{
			Z:          1,
			FovDegrees: 70,
		},
	}
}

// LoadGameConfig 加载游戏调参配置
//
// 文件中未出现的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/game.yaml"）
//
// 返回:
//   - *GameConfig: 合并默认值后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}
	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseGameConfig 在默认值之上解析 YAML 内容
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

// Validate 校验调参配置
func (c *GameConfig) Validate() error {
	if c.Physics.SolverIterations <= 0 {
		return fmt.Errorf("physics.solverIterations must be > 0, got %d", c.Physics.SolverIterations)
	}
	if !c.Physics.Gravity.finite() {
		return fmt.Errorf("physics.gravity must be finite")
	}
	if c.Physics.MaxSubStep < 0 {
		return fmt.Errorf("physics.maxSubStep must be >= 0, got %g", c.Physics.MaxSubStep)
	}
	if c.Physics.MaxFrameDt < 0 {
		return fmt.Errorf("physics.maxFrameDt must be >= 0, got %g", c.Physics.MaxFrameDt)
	}
	if c.Tilt.VelocityDivisor == 0 {
		return fmt.Errorf("tilt.velocityDivisor must not be 0")
	}
	if c.Tilt.PointerRange <= 0 {
		return fmt.Errorf("tilt.pointerRange must be > 0, got %g", c.Tilt.PointerRange)
	}
	if c.Rules.CelebrationMs < 0 {
		return fmt.Errorf("rules.celebrationMs must be >= 0, got %g", c.Rules.CelebrationMs)
	}
	if c.Shake.Threshold <= 0 {
		return fmt.Errorf("shake.threshold must be > 0, got %g", c.Shake.Threshold)
	}
	if c.Shake.CooldownMs < 0 {
		return fmt.Errorf("shake.cooldownMs must be >= 0, got %g", c.Shake.CooldownMs)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.Z <= 0 || c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		return fmt.Errorf("camera z must be > 0 and fov in (0, 180)")
	}
	return nil
}
