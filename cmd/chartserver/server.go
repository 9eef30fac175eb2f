// Command chartserver is a minimal demo host application: it owns one
// chartengine.Engine, renders frames through a no-op measuring backend, and
// pushes each Rendered plugin event's frame hash and dirty-region summary
// to connected browser viewers over a websocket. It is explicitly a
// host-app shim outside the core engine's budget (spec §1) — the Go port's
// stand-in for the original's live-feed demo.
//
// Grounded on the teacher's internal/web/server.go: the same connection
// registry (map[*websocket.Conn]struct{} guarded by a mutex), upgrade
// handler, and broadcast-to-all-connections loop, reduced to the one
// concern this port needs.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/luhouxiang/chartcore/internal/chartengine"
	"github.com/luhouxiang/chartcore/internal/invalidation"
	"github.com/luhouxiang/chartcore/internal/renderframe"
	"github.com/luhouxiang/chartcore/internal/snapshotstore"
)

// Server hosts one Engine plus its websocket broadcast registry and
// optional snapshot persistence.
type Server struct {
	engine *chartengine.Engine
	store  *snapshotstore.Store
	scope  string

	mu        sync.Mutex
	wsWriteMu sync.Mutex
	wsConns   map[*websocket.Conn]struct{}

	lastFrame frameSummary
}

// NewServer wires the given Engine plus an optional snapshot store (may be
// nil when persistence isn't wanted) behind one websocket broadcast
// registry, and registers the broadcast plugin on the engine.
func NewServer(engine *chartengine.Engine, store *snapshotstore.Store, scope string) *Server {
	s := &Server{
		engine:  engine,
		store:   store,
		scope:   scope,
		wsConns: make(map[*websocket.Conn]struct{}),
	}
	_ = engine.RegisterPlugin(renderBroadcastPlugin{server: s})
	return s
}

// Handler builds the HTTP mux: /ws for the live feed, /status for a
// point-in-time JSON snapshot, /snapshot to persist/restore state when a
// store is configured.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/snapshot/save", s.handleSnapshotSave)
	mux.HandleFunc("/snapshot/load", s.handleSnapshotLoad)
	return mux
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"pending_invalidation": s.engine.PendingInvalidation(),
		"last_frame":           s.lastFrame,
	})
}

func (s *Server) handleSnapshotSave(w http.ResponseWriter, _ *http.Request) {
	if s.store == nil {
		http.Error(w, "no snapshot store configured", http.StatusServiceUnavailable)
		return
	}
	if err := s.store.PutEngineSnapshot(s.scope, s.engine); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": true, "scope": s.scope})
}

func (s *Server) handleSnapshotLoad(w http.ResponseWriter, _ *http.Request) {
	if s.store == nil {
		http.Error(w, "no snapshot store configured", http.StatusServiceUnavailable)
		return
	}
	restored, found, err := s.store.GetEngineSnapshot(s.scope)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "no snapshot saved for scope", http.StatusNotFound)
		return
	}
	s.mu.Lock()
	s.engine = restored
	s.mu.Unlock()
	_ = restored.RegisterPlugin(renderBroadcastPlugin{server: s})
	writeJSON(w, http.StatusOK, map[string]any{"loaded": true, "scope": s.scope})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.wsConns[conn] = struct{}{}
	s.mu.Unlock()

	_ = conn.WriteJSON(map[string]any{"type": "frame_rendered", "data": s.lastFrame})

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.wsConns, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) broadcast(eventType string, data any) {
	payload := map[string]any{"type": eventType, "data": data}

	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.wsConns))
	for conn := range s.wsConns {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	s.wsWriteMu.Lock()
	defer s.wsWriteMu.Unlock()
	for _, conn := range conns {
		if err := conn.WriteJSON(payload); err != nil {
			s.mu.Lock()
			delete(s.wsConns, conn)
			s.mu.Unlock()
			conn.Close()
		}
	}
}

// frameSummary is the broadcast payload: a content hash of the frame (so
// viewers can detect "nothing actually changed" pushes) plus how many
// primitives of each kind the frame carries, standing in for the original
// demo's richer dirty-region display.
type frameSummary struct {
	Hash       string `json:"hash"`
	Panes      int    `json:"panes"`
	Lines      int    `json:"lines"`
	Rects      int    `json:"rects"`
	Texts      int    `json:"texts"`
	Level      string `json:"invalidation_level"`
	WasPartial bool   `json:"was_partial"`
}

func summarize(frame *renderframe.LayeredRenderFrame, level invalidation.Level, partial bool) frameSummary {
	data, _ := json.Marshal(frame)
	sum := sha256.Sum256(data)
	s := frameSummary{Hash: hex.EncodeToString(sum[:8]), Level: level.String(), WasPartial: partial}
	for _, stack := range frame.Panes {
		s.Panes++
		for _, layer := range stack.Layers {
			s.Lines += len(layer.Lines)
			s.Rects += len(layer.Rects)
			s.Texts += len(layer.Texts)
		}
	}
	return s
}

// renderBroadcastPlugin implements chartengine.Plugin: on the Rendered
// event it summarizes the frame the triggering Render call just built and
// pushes it to every connected viewer.
type renderBroadcastPlugin struct {
	server *Server
}

func (renderBroadcastPlugin) ID() string { return "chartserver.render-broadcast" }

func (p renderBroadcastPlugin) OnEvent(ev chartengine.Event, _ chartengine.Context) {
	if ev.Kind != chartengine.EventRendered {
		return
	}
	frame, ok := ev.Detail.(chartengine.RenderedDetail)
	if !ok {
		return
	}
	summary := summarize(frame.Frame, frame.Level, frame.Partial)
	p.server.mu.Lock()
	p.server.lastFrame = summary
	p.server.mu.Unlock()
	p.server.broadcast("frame_rendered", summary)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
