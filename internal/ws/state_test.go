package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/wordclock/internal/app"
	diag "github.com/coreman2200/wordclock/internal/diagnostics"
	"github.com/coreman2200/wordclock/internal/layout"
	"github.com/coreman2200/wordclock/internal/show"
)

func newServer(t *testing.T, id *atomic.Uint64) (*State, *httptest.Server) {
	s := NewState(layout.WordClock(), 200,
		func() ([]byte, uint64) { return []byte{1, 2, 3}, id.Load() },
		func() app.Status { return app.Status{Special: show.LightShow, Hour: 7, Minute: 47} },
	)
	s.Driver = "sim"
	mux := http.NewServeMux()
	s.Routes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return s, srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	c, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	c.SetReadDeadline(time.Now().Add(5 * time.Second))
	return c
}

func TestFramesStream(t *testing.T) {
	var id atomic.Uint64
	s, srv := newServer(t, &id)
	c := dial(t, srv, "/ws")

	var top map[string]any
	require.NoError(t, c.ReadJSON(&top))
	assert.Equal(t, "sim", top["driver"])
	assert.Equal(t, map[string]any{"x": 12.0, "y": 10.0}, top["dim"])

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	id.Store(5)
	go s.RunBroadcast(ctx)

	var f frame
	require.NoError(t, c.ReadJSON(&f))
	assert.Equal(t, uint64(5), f.FrameID)
	assert.Equal(t, []byte{1, 2, 3}, f.RGB)
}

func TestDiagStream(t *testing.T) {
	var id atomic.Uint64
	s, srv := newServer(t, &id)
	c := dial(t, srv, "/diag")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.RunDiag(ctx)

	// registration races the dial; keep pushing until one lands
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.PushDiag(diag.New(diag.Info, diag.CodeSpecialStart, "light-show"))
			}
		}
	}()

	var d diag.Diagnostic
	require.NoError(t, c.ReadJSON(&d))
	assert.Equal(t, diag.CodeSpecialStart, d.Code)
	assert.Equal(t, "light-show", d.Summary)
}

func TestPushDiagNeverBlocks(t *testing.T) {
	var id atomic.Uint64
	s, _ := newServer(t, &id)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < DiagQueue+10; i++ {
			s.PushDiag(diag.New(diag.Info, diag.CodeStage, "snake"))
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("PushDiag blocked without a reader")
	}
	assert.Equal(t, uint64(10), s.Dropped())
}

func TestHealth(t *testing.T) {
	var id atomic.Uint64
	id.Store(42)
	_, srv := newServer(t, &id)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 42.0, got["frame_id"])
	assert.Equal(t, 120.0, got["count"])
	assert.Equal(t, "light-show", got["special"])
	assert.Equal(t, 7.0, got["hour"])
}

func TestNoControlEndpoint(t *testing.T) {
	var id atomic.Uint64
	_, srv := newServer(t, &id)
	resp, err := http.Get(srv.URL + "/control")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
