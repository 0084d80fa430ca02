package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/wordclock/internal/app"
	diag "github.com/coreman2200/wordclock/internal/diagnostics"
	"github.com/coreman2200/wordclock/internal/layout"
)

// FrameSource returns the last rendered frame and its id.
type FrameSource func() ([]byte, uint64)

// StatusSource returns the clock snapshot.
type StatusSource func() app.Status

// State serves the read-only streams of the clock.
type State struct {
	mu       sync.RWMutex
	writeMu  sync.Mutex
	Layout   layout.Layout
	FrameFPS int
	Driver   string

	frames    FrameSource
	status    StatusSource
	lastID    uint64
	startTime time.Time

	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool

	diagQ   chan []byte
	dropped atomic.Uint64
}

// DiagQueue bounds the diagnostics waiting for RunDiag.
const DiagQueue = 64

func NewState(l layout.Layout, fps int, frames FrameSource, status StatusSource) *State {
	return &State{
		Layout:      l,
		FrameFPS:    fps,
		frames:      frames,
		status:      status,
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		diagQ:       make(chan []byte, DiagQueue),
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// RunBroadcast sends new frames to /ws clients at most FrameFPS times a
// second until ctx ends.
func (s *State) RunBroadcast(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(max(1, s.FrameFPS)))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rgb, id := s.frames()
			s.mu.Lock()
			fresh := id != s.lastID
			s.lastID = id
			s.mu.Unlock()
			if fresh {
				s.broadcastFrame(rgb, id)
			}
		}
	}
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	s.sendTopology(conn)
	go s.drain(conn, s.clients)
}

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()
	go s.drain(conn, s.diagClients)
}

// drain discards client messages until the connection closes.
func (s *State) drain(conn *websocket.Conn, set map[*websocket.Conn]bool) {
	defer func() {
		s.mu.Lock()
		delete(set, conn)
		s.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_, id := s.frames()
	st := s.status()
	s.mu.RLock()
	resp := map[string]any{
		"frame_id":    id,
		"uptime_s":    time.Since(s.startTime).Seconds(),
		"count":       s.Layout.Count(),
		"driver":      s.Driver,
		"special":     st.Special,
		"hour":        st.Hour,
		"minute":      st.Minute,
		"hour_offset": st.HourOffset,
		"phrase":      st.Phrase,
	}
	s.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *State) sendTopology(conn *websocket.Conn) {
	s.mu.RLock()
	top := map[string]any{
		"dim":    map[string]int{"x": s.Layout.Dim.X, "y": s.Layout.Dim.Y},
		"order":  map[string]bool{"xFlipEveryRow": s.Layout.Order.XFlipEveryRow},
		"driver": s.Driver,
	}
	s.mu.RUnlock()
	b, _ := json.Marshal(top)
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

type frame struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	RGB     []byte `json:"rgb"`
}

func (s *State) broadcastFrame(rgb []byte, id uint64) {
	b, _ := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: id, RGB: rgb})
	s.writeAll(s.clients, b)
}

// PushDiag queues d for the /diag clients and never blocks; when the queue
// is full d is dropped. Safe from any goroutine.
func (s *State) PushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	select {
	case s.diagQ <- b:
	default:
		s.dropped.Add(1)
	}
}

// Dropped reports how many diagnostics a full queue discarded.
func (s *State) Dropped() uint64 { return s.dropped.Load() }

// RunDiag writes queued diagnostics to /diag clients until ctx ends.
func (s *State) RunDiag(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case b := <-s.diagQ:
			s.writeAll(s.diagClients, b)
		}
	}
}

func (s *State) writeAll(set map[*websocket.Conn]bool, b []byte) {
	s.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(set))
	for c := range set {
		conns = append(conns, c)
	}
	s.mu.RUnlock()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("ws write")
		}
	}
}

// Routes registers the read-only endpoints.
func (s *State) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.HandleFramesWS)
	mux.HandleFunc("/diag", s.HandleDiagWS)
	mux.HandleFunc("/health", s.HandleHealth)
}
