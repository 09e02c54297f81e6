package input

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/decker502/tiltmaze/pkg/utils"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// 等待下一条消息或 pong 的时间
	pongWait = 60 * time.Second
	// 发送 ping 的周期，必须小于 pongWait
	pingPeriod = (pongWait * 9) / 10
	writeWait  = 10 * time.Second
	// 单条传感器消息的最大字节数
	maxMessageSize = 512
)

// SensorMessage 手机浏览器推送的传感器读数
//
//	{"type":"orientation","alpha":0,"beta":10,"gamma":-5}
//	{"type":"motion","x":40,"y":20,"z":5}
type SensorMessage struct {
	Type  string   `json:"type"`
	Alpha *float64 `json:"alpha"`
	Beta  *float64 `json:"beta"`
	Gamma *float64 `json:"gamma"`
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
	Z     *float64 `json:"z"`
}

// SensorBridge 通过 websocket 接收手机的方向和加速度读数
//
// 每个连接在自己的 goroutine 上读取，只调用 Normalizer 的
// Orientation / Motion，它们只触碰事件队列和摇晃闸门。
type SensorBridge struct {
	n        *Normalizer
	clock    utils.Clock
	log      *zap.Logger
	upgrader websocket.Upgrader
}

// NewSensorBridge 创建传感器桥
//
// 参数:
//   - n: 输入归一化器
//   - clock: 会话时钟，事件时间戳与帧循环一致
//   - log: 日志
func NewSensorBridge(n *Normalizer, clock utils.Clock, log *zap.Logger) *SensorBridge {
	if log == nil {
		log = zap.NewNop()
	}
	return &SensorBridge{
		n:     n,
		clock: clock,
		log:   log.Named("sensor"),
		upgrader: websocket.Upgrader{
			// 局域网内手机直连，不校验 Origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler 返回桥的 HTTP 路由：/ 为传感器页面，/ws 为 websocket 端点
func (b *SensorBridge) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", b.servePage)
	mux.Handle("/ws", b)
	return mux
}

// ServeHTTP 升级为 websocket 并持续读取传感器消息
func (b *SensorBridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	id := uuid.NewString()
	log := b.log.With(zap.String("conn", id), zap.String("remote", r.RemoteAddr))
	log.Info("sensor connected")

	done := make(chan struct{})
	go b.pingLoop(conn, done)
	defer func() {
		close(done)
		conn.Close()
		log.Info("sensor disconnected")
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("sensor read failed", zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg SensorMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug("malformed sensor message", zap.Error(err))
			continue
		}
		b.Dispatch(msg)
	}
}

// Dispatch 把一条传感器消息交给归一化器
// 返回消息是否产生了事件
func (b *SensorBridge) Dispatch(msg SensorMessage) bool {
	now := b.clock.NowMillis()
	switch msg.Type {
	case "orientation":
		return b.n.Orientation(OrientationReading{Alpha: msg.Alpha, Beta: msg.Beta, Gamma: msg.Gamma}, now)
	case "motion":
		return b.n.Motion(MotionReading{X: msg.X, Y: msg.Y, Z: msg.Z}, now)
	default:
		b.log.Debug("unknown sensor message type", zap.String("type", msg.Type))
		return false
	}
}

func (b *SensorBridge) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// ListenAndServe 在 addr 上运行传感器桥，ctx 取消时关闭
func (b *SensorBridge) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           b.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	b.log.Info("sensor bridge listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (b *SensorBridge) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(sensorPage))
}

// sensorPage 在手机浏览器中打开，把 deviceorientation / devicemotion 转发到 /ws
const sensorPage = `<!doctype html>
<html><head><meta name="viewport" content="width=device-width,initial-scale=1"><title>Tilt Maze Sensor</title></head>
<body style="font-family:sans-serif;text-align:center;padding-top:3em">
<button id="start" style="font-size:1.5em">Start</button>
<p id="status">idle</p>
<script>
document.getElementById("start").onclick = async function () {
  if (typeof DeviceOrientationEvent !== "undefined" && DeviceOrientationEvent.requestPermission) {
    try { await DeviceOrientationEvent.requestPermission(); } catch (e) {}
  }
  if (typeof DeviceMotionEvent !== "undefined" && DeviceMotionEvent.requestPermission) {
    try { await DeviceMotionEvent.requestPermission(); } catch (e) {}
  }
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  var status = document.getElementById("status");
  ws.onopen = function () { status.textContent = "connected"; };
  ws.onclose = function () { status.textContent = "closed"; };
  window.addEventListener("deviceorientation", function (e) {
    if (ws.readyState === 1) ws.send(JSON.stringify({type: "orientation", alpha: e.alpha, beta: e.beta, gamma: e.gamma}));
  });
  window.addEventListener("devicemotion", function (e) {
    var a = e.acceleration;
    if (a && ws.readyState === 1) ws.send(JSON.stringify({type: "motion", x: a.x, y: a.y, z: a.z}));
  });
};
</script>
</body></html>
`
