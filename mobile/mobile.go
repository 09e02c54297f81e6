//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
// 宿主应用把系统传感器回调转发给 OnDeviceOrientation / OnDeviceMotion。
//
// 手动构建：
//
//	# Android
//	cp -r data mobile/ && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.tiltmaze -o build/android/tiltmaze.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	cp -r data mobile/ && ebitenmobile bind -target ios -tags mobile -o build/ios/TiltMaze.xcframework -v ./mobile
package mobile

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2/mobile"
	"go.uber.org/zap"

	"github.com/decker502/tiltmaze/pkg/app"
	"github.com/decker502/tiltmaze/pkg/embedded"
	"github.com/decker502/tiltmaze/pkg/input"
	"github.com/decker502/tiltmaze/pkg/logging"
)

var gameApp *app.App

func init() {
	embedded.Init(dataFS)

	log, err := logging.New(logging.Config{Verbose: true, Level: "info"})
	if err != nil {
		os.Stderr.WriteString("日志初始化失败: " + err.Error() + "\n")
		log = zap.NewNop()
	}

	gameApp, err = app.NewApp(app.Config{SettingsApp: app.DefaultSettingsApp}, log)
	if err != nil {
		log.Fatal("游戏初始化失败", zap.Error(err))
	}

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// OnDeviceOrientation 转发设备方向读数（度）
// hasX 为 false 表示该轴不可用，整条读数会被忽略
func OnDeviceOrientation(alpha, beta, gamma float64, hasAlpha, hasBeta, hasGamma bool) {
	gameApp.Normalizer().Orientation(input.OrientationReading{
		Alpha: optional(alpha, hasAlpha),
		Beta:  optional(beta, hasBeta),
		Gamma: optional(gamma, hasGamma),
	}, gameApp.Clock().NowMillis())
}

// OnDeviceMotion 转发不含重力的设备加速度（m/s²）
func OnDeviceMotion(x, y, z float64, hasX, hasY, hasZ bool) {
	gameApp.Normalizer().Motion(input.MotionReading{
		X: optional(x, hasX),
		Y: optional(y, hasY),
		Z: optional(z, hasZ),
	}, gameApp.Clock().NowMillis())
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
