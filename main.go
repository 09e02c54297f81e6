package main

import (
	"flag"
	"os"

	"github.com/decker502/tiltmaze/pkg/app"
	"github.com/decker502/tiltmaze/pkg/embedded"
	"github.com/decker502/tiltmaze/pkg/logging"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	logLevel   = flag.String("log-level", "", "日志级别 (debug/info/warn/error)")
	sensorAddr = flag.String("sensor-addr", "", "手机传感器桥监听地址，如 :8088")
	hardcore   = flag.Bool("hardcore", false, "以困难模式开局（无边界墙）")
	mazePath   = flag.String("maze", "", "迷宫布局文件，默认使用内置 data/maze.yaml")
	configPath = flag.String("config", "", "游戏调参文件，默认使用内置 data/game.yaml")
)

func main() {
	flag.Parse()

	log, err := logging.New(logging.Config{Verbose: *verbose, Level: *logLevel})
	if err != nil {
		os.Stderr.WriteString("日志初始化失败: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	// data/ 下的路径从嵌入文件系统读取，其它路径从磁盘读取
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		MazePath:    *mazePath,
		ConfigPath:  *configPath,
		SensorAddr:  *sensorAddr,
		Hardcore:    *hardcore,
		SettingsApp: app.DefaultSettingsApp,
	}, log)
	if err != nil {
		log.Fatal("游戏初始化失败", zap.Error(err))
	}
	defer gameApp.Close()

	w, h := gameApp.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(gameApp.WindowTitle())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Error("game loop exited with error", zap.Error(err))
	}
}
