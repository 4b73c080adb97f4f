package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"thermal_planner/internal/service"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms
)

// Frame types of the simulation stream.
const (
	frameProgress = "progress"
	frameDone     = "done"
	frameError    = "error"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Stream a simulation
// @Description  Upgrades to WebSocket and sends one "progress" frame per chunk, then a "done" frame with the report.
// @Description  Scenario fields come from the query and fall back to the configured defaults.
// @Tags         simulation
// @Param        hours        query  number  false  "Simulated hours"
// @Param        dt_seconds   query  number  false  "Step in seconds"
// @Param        chunk_hours  query  number  false  "Simulated hours per frame"
// @Param        start_temp   query  number  false  "Initial room temperature"
// @Param        t_min        query  number  false  "Daily outdoor minimum"
// @Param        t_max        query  number  false  "Daily outdoor maximum"
// @Param        mode         query  string  false  "Control mode for every room"  Enums(THERMOSTAT,ALWAYS_ON,ALWAYS_OFF,CYCLIC)
// @Param        target_temp  query  number  false  "Thermostat target"
// @Param        interval     query  string  false  "Delay between frames, e.g. 200ms"
// @Failure      400          {object}  map[string]string
// @Router       /ws/simulation [get]
func (h *Handler) wsSimulation(c *gin.Context) {
	interval := h.parseInterval(c)

	p, err := h.streamParams(c)
	if err != nil {
		h.respondError(c, "ws_bad_params", err)
		return
	}
	stream, err := h.services.Start(c.Request.Context(), p)
	if err != nil {
		h.respondError(c, "ws_start_failed", err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()

	// First chunk goes out immediately.
	if finished := h.sendChunk(ctx, conn, stream); finished {
		return
	}

	for {
		select {
		case <-done:
			if h.log != nil {
				h.log.Infow("ws_simulation_abandoned")
			}
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if finished := h.sendChunk(ctx, conn, stream); finished {
				return
			}
		}
	}
}

// sendChunk advances the stream by one chunk and writes the frame. After the last chunk it
// sends the report and closes the connection normally. Returns true when the connection
// should be dropped.
func (h *Handler) sendChunk(ctx context.Context, conn *websocket.Conn, stream service.ProgressStream) bool {
	if !stream.Done() {
		pr, err := stream.Next(ctx)
		if err != nil {
			h.sendError(conn, "ws_simulation_step_failed", err)
			return true
		}
		if err := writeEnvelope(conn, wsEnvelope{Type: frameProgress, Data: pr}); err != nil {
			if h.log != nil {
				h.log.Infow("ws_write_failed", "err", err)
			}
			return true
		}
		if !stream.Done() {
			return false
		}
	}

	rep, err := stream.Finish(ctx)
	if err != nil {
		h.sendError(conn, "ws_simulation_finish_failed", err)
		return true
	}
	if err := writeEnvelope(conn, wsEnvelope{Type: frameDone, Data: rep}); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed", "err", err)
		}
		return true
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, frameDone),
		time.Now().Add(writeWait))
	return true
}

func (h *Handler) sendError(conn *websocket.Conn, logKey string, err error) {
	if h.log != nil {
		h.log.Errorw(logKey, "err", err)
	}
	_ = writeEnvelope(conn, wsEnvelope{Type: frameError, Error: err.Error()})
}

func writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}

// streamParams merges scenario query parameters into the configured defaults.
func (h *Handler) streamParams(c *gin.Context) (service.RunParams, error) {
	p := h.services.DefaultParams()

	for key, dst := range map[string]*float64{
		"hours":         &p.Hours,
		"dt_seconds":    &p.DtSeconds,
		"chunk_hours":   &p.ChunkHours,
		"start_temp":    &p.StartTemp,
		"t_min":         &p.TMin,
		"t_max":         &p.TMax,
		"internal_gain": &p.InternalGain,
		"tariff":        &p.Tariff,
	} {
		if err := queryFloat(c, key, dst); err != nil {
			return p, err
		}
	}

	var prof profileRequest
	prof.Mode = c.Query("mode")
	if s := c.Query("target_temp"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return p, fmt.Errorf("%w: target_temp must be a number", service.ErrInvalidParams)
		}
		prof.TargetTemp = &v
	}
	for key, dst := range map[string]*float64{
		"cycle_on_hours":    &prof.CycleOnHours,
		"cycle_off_hours":   &prof.CycleOffHours,
		"time_offset_hours": &prof.TimeOffsetHours,
	} {
		if err := queryFloat(c, key, dst); err != nil {
			return p, err
		}
	}
	def, err := prof.toProfile()
	if err != nil {
		return p, err
	}
	p.DefaultProfile = &def
	p.Project = c.Query("project")
	return p, nil
}

func queryFloat(c *gin.Context, key string, dst *float64) error {
	s := c.Query(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: %s must be a number", service.ErrInvalidParams, key)
	}
	*dst = v
	return nil
}

// Helper: parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	interval := defaultInterval

	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return interval
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}
