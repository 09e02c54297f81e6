// verify_physics 在无窗口环境下运行迷宫模拟，打印小球轨迹和状态变化
//
// 用法:
//
//	go run ./cmd/verify_physics --frames 600 --beta 10 --gamma 5
//	go run ./cmd/verify_physics --hardcore --beta -30
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/tiltmaze/pkg/config"
	"github.com/decker502/tiltmaze/pkg/game"
	"github.com/decker502/tiltmaze/pkg/input"
	"github.com/decker502/tiltmaze/pkg/logging"
	"github.com/decker502/tiltmaze/pkg/systems"
	"github.com/decker502/tiltmaze/pkg/utils"
	"go.uber.org/zap"
)

var (
	verbose  = flag.Bool("verbose", false, "显示详细调试信息")
	frames   = flag.Int("frames", 300, "模拟帧数")
	fps      = flag.Float64("fps", 60, "模拟帧率")
	every    = flag.Int("every", 30, "每隔多少帧打印一次位置")
	beta     = flag.Float64("beta", 0, "设备方向 beta（前后倾斜，度）")
	gamma    = flag.Float64("gamma", 0, "设备方向 gamma（左右倾斜，度）")
	hardcore = flag.Bool("hardcore", false, "困难模式（移除边界墙）")
	shakeAt  = flag.Int("shake-at", -1, "在第几帧模拟一次摇晃，负数表示不摇晃")
	mazePath = flag.String("maze", config.DefaultMazePath, "迷宫布局文件")
	gamePath = flag.String("config", config.DefaultGameConfigPath, "游戏调参文件")
)

// bannerPrinter 打印横幅事件
type bannerPrinter struct {
	clock utils.Clock
}

func (b bannerPrinter) ShowWinBanner() {
	fmt.Printf("[%8.1fms] WIN banner shown\n", b.clock.NowMillis())
}

func (b bannerPrinter) HideWinBanner() {
	fmt.Printf("[%8.1fms] WIN banner hidden, ball respawned\n", b.clock.NowMillis())
}

func main() {
	flag.Parse()
	if *every <= 0 {
		*every = 1
	}
	if *fps <= 0 {
		*fps = 60
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log, err := logging.New(logging.Config{Verbose: *verbose, Level: level, Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	maze, err := config.LoadMazeConfig(*mazePath)
	if err != nil {
		log.Fatal("迷宫配置加载失败", zap.Error(err))
	}
	cfg, err := config.LoadGameConfig(*gamePath)
	if err != nil {
		log.Fatal("游戏配置加载失败", zap.Error(err))
	}

	session, err := game.NewSession(maze, cfg, log)
	if err != nil {
		log.Fatal("游戏会话创建失败", zap.Error(err))
	}
	if *hardcore {
		session.Toggle()
	}

	clock := utils.NewManualClock(0)
	session.AddBannerListener(bannerPrinter{clock: clock})

	queue := input.NewQueue(input.DefaultQueueCapacity)
	normalizer := input.NewNormalizer(queue, input.Config{
		PointerRange:    cfg.Tilt.PointerRange,
		ShakeThreshold:  cfg.Shake.Threshold,
		ShakeCooldownMs: cfg.Shake.CooldownMs,
	}, log)
	frame := systems.NewFrameController(session, queue, systems.NewRenderSyncSystem(session.Entities), cfg.Tilt.VelocityDivisor, cfg.Physics.MaxFrameDt, log)

	alpha := 0.0
	normalizer.Orientation(input.OrientationReading{Alpha: &alpha, Beta: beta, Gamma: gamma}, 0)

	fmt.Printf("mode=%s tilt=(beta %.2f, gamma %.2f) frames=%d fps=%.0f\n", session.Mode, *beta, *gamma, *frames, *fps)
	stepMs := 1000 / *fps
	for i := 0; i < *frames; i++ {
		if i == *shakeAt {
			big := cfg.Shake.Threshold
			normalizer.Motion(input.MotionReading{X: &big, Y: &big, Z: &big}, clock.NowMillis())
		}

		prevMode := session.Mode
		frame.Update(clock.NowMillis())
		if session.Mode != prevMode {
			fmt.Printf("[%8.1fms] mode -> %s\n", clock.NowMillis(), session.Mode)
		}

		if i%*every == 0 || i == *frames-1 {
			p := session.Ball().Position
			v := session.Ball().Velocity
			fmt.Printf("frame %4d t=%8.1fms pos=(%+.4f, %+.4f, %+.4f) vel=(%+.3f, %+.3f, %+.3f) celebrating=%v\n",
				i, clock.NowMillis(), p.X(), p.Y(), p.Z(), v.X(), v.Y(), v.Z(), session.Celebrating())
		}
		clock.Advance(stepMs)
	}

	if dropped := queue.Dropped(); dropped > 0 {
		fmt.Printf("dropped input events: %d\n", dropped)
	}
}
