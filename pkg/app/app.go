// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"

	"github.com/decker502/tiltmaze/pkg/config"
	"github.com/decker502/tiltmaze/pkg/game"
	"github.com/decker502/tiltmaze/pkg/input"
	"github.com/decker502/tiltmaze/pkg/render"
	"github.com/decker502/tiltmaze/pkg/scenes"
	"github.com/decker502/tiltmaze/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
)

// DefaultSettingsApp gdata 存储使用的应用名
const DefaultSettingsApp = "tiltmaze"

// Config 定义应用启动配置
type Config struct {
	// MazePath 迷宫布局文件，为空时使用 data/maze.yaml
	MazePath string
	// ConfigPath 游戏调参文件，为空时使用 data/game.yaml
	ConfigPath string
	// SensorAddr 非空时在该地址启动手机传感器桥（如 ":8088"）
	SensorAddr string
	// Hardcore 以困难模式开局
	Hardcore bool
	// SettingsApp 显示设置的 gdata 应用名，为空时不持久化
	SettingsApp string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	gameConfig *config.GameConfig
	session    *game.Session
	scene      game.Scene
	clock      utils.Clock
	normalizer *input.Normalizer
	settings   *game.SettingsManager
	hud        *render.HUD
	window     windowControl
	log        *zap.Logger

	stopBridge context.CancelFunc

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，如需从嵌入资源读取配置，必须先调用 embedded.Init()。
//
// 参数:
//   - cfg: 启动配置
//   - log: 日志，nil 时不输出
//
// 返回:
//   - *App: 游戏应用
//   - error: 配置加载或会话创建失败时返回错误
func NewApp(cfg Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MazePath == "" {
		cfg.MazePath = config.DefaultMazePath
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = config.DefaultGameConfigPath
	}

	maze, err := config.LoadMazeConfig(cfg.MazePath)
	if err != nil {
		return nil, fmt.Errorf("迷宫配置加载失败: %w", err)
	}
	gameCfg, err := config.LoadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}
	log.Info("config loaded", zap.String("maze", cfg.MazePath), zap.String("game", cfg.ConfigPath))

	session, err := game.NewSession(maze, gameCfg, log)
	if err != nil {
		return nil, fmt.Errorf("游戏会话创建失败: %w", err)
	}
	if cfg.Hardcore {
		session.Toggle()
	}

	queue := input.NewQueue(input.DefaultQueueCapacity)
	normalizer := input.NewNormalizer(queue, input.Config{
		PointerRange:    gameCfg.Tilt.PointerRange,
		ShakeThreshold:  gameCfg.Shake.Threshold,
		ShakeCooldownMs: gameCfg.Shake.CooldownMs,
	}, log)

	settings := game.NewSettingsManager(openSettingsStore(cfg.SettingsApp, log), log)
	hud := render.NewHUD(settings.GetSettings().ShowHUD)
	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	a := &App{
		gameConfig: gameCfg,
		session:    session,
		scene:      scenes.NewMazeScene(session, queue, normalizer, gameCfg, maze, hud, log),
		clock:      utils.NewMonotonicClock(),
		normalizer: normalizer,
		settings:   settings,
		hud:        hud,
		window:     ebitenWindow{},
		log:        log.Named("app"),
	}

	if cfg.SensorAddr != "" {
		a.startSensorBridge(cfg.SensorAddr)
	}
	return a, nil
}

// openSettingsStore 打开 gdata 存储，失败时返回 nil（仅内存设置）
func openSettingsStore(appName string, log *zap.Logger) *gdata.Manager {
	if appName == "" {
		return nil
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Warn("settings storage unavailable", zap.Error(err))
		return nil
	}
	return m
}

func (a *App) startSensorBridge(addr string) {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopBridge = cancel

	bridge := input.NewSensorBridge(a.normalizer, a.clock, a.log)
	go func() {
		if err := bridge.ListenAndServe(ctx, addr); err != nil {
			a.log.Error("sensor bridge stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 退出全屏后需要等待几帧才能正确设置窗口大小
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.gameConfig.Window.Width, a.gameConfig.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.hud.Visible = !a.hud.Visible
		a.settings.SetShowHUD(a.hud.Visible)
		a.saveSettings()
	}

	a.scene.Update(a.clock.NowMillis())
	return nil
}

// windowControl 全屏切换用到的窗口操作
type windowControl interface {
	IsFullscreen() bool
	SetFullscreen(fullscreen bool)
	// Restore 退出全屏后把最大化/最小化的窗口恢复为普通窗口
	Restore()
}

type ebitenWindow struct{}

func (ebitenWindow) IsFullscreen() bool    { return ebiten.IsFullscreen() }
func (ebitenWindow) SetFullscreen(fs bool) { ebiten.SetFullscreen(fs) }
func (ebitenWindow) Restore() {
	if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
		ebiten.RestoreWindow()
	}
}

// toggleFullscreen 切换全屏并保存切换后的实际窗口状态
func (a *App) toggleFullscreen() {
	wasFullscreen := a.window.IsFullscreen()
	a.window.SetFullscreen(!wasFullscreen)
	if wasFullscreen {
		a.window.Restore()
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}
	a.settings.SetFullscreen(!wasFullscreen)
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		a.log.Warn("failed to save settings", zap.Error(err))
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.scene.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右留黑边并使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.gameConfig.Window.Width, a.gameConfig.Window.Height
}

// WindowTitle 返回窗口标题
func (a *App) WindowTitle() string {
	return a.gameConfig.Window.Title
}

// Normalizer 返回输入归一化器，移动端宿主通过它投递传感器读数
func (a *App) Normalizer() *input.Normalizer {
	return a.normalizer
}

// Clock 返回会话时钟
func (a *App) Clock() utils.Clock {
	return a.clock
}

// Session 返回当前游戏会话
func (a *App) Session() *game.Session {
	return a.session
}

// Close 停止传感器桥
func (a *App) Close() {
	if a.stopBridge != nil {
		a.stopBridge()
		a.stopBridge = nil
	}
}
