package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-trilight/internal/effect"
	"github.com/coreman2200/funtimes-trilight/internal/geometry"
)

// State fans frames out to websocket preview clients and serves a
// small health endpoint.
type State struct {
	mu        sync.RWMutex
	panels    int
	frameID   uint64
	startTime time.Time
	lastDelay time.Duration
	clients   map[*websocket.Conn]bool
	topology  []byte
}

type topoPanel struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type frameMsg struct {
	T       int64        `json:"t"`
	FrameID uint64       `json:"frame_id"`
	DelayMS int64        `json:"delay_ms"`
	Panels  []panelColor `json:"panels"`
}

type panelColor struct {
	ID int   `json:"id"`
	R  uint8 `json:"r"`
	G  uint8 `json:"g"`
	B  uint8 `json:"b"`
	T  int   `json:"trans"`
}

// NewState captures the oriented layout's topology for clients.
func NewState(l *geometry.Layout) *State {
	panels := make([]topoPanel, 0, len(l.Panels))
	for _, p := range l.Panels {
		c := p.Shape.Centroid()
		panels = append(panels, topoPanel{ID: p.ID, X: c.X, Y: c.Y})
	}
	b, _ := json.Marshal(map[string]any{"panels": panels})
	return &State{
		panels:    len(l.Panels),
		startTime: time.Now(),
		clients:   map[*websocket.Conn]bool{},
		topology:  b,
	}
}

// Broadcast sends one frame to every connected client.
func (s *State) Broadcast(frame []effect.Frame, delay time.Duration) {
	s.mu.Lock()
	s.frameID++
	s.lastDelay = delay
	msg := frameMsg{
		T:       time.Now().UnixNano(),
		FrameID: s.frameID,
		DelayMS: delay.Milliseconds(),
		Panels:  make([]panelColor, 0, len(frame)),
	}
	for _, f := range frame {
		msg.Panels = append(msg.Panels, panelColor{
			ID: f.PanelID, R: f.Color.R, G: f.Color.G, B: f.Color.B, T: f.TransTime,
		})
	}
	b, _ := json.Marshal(msg)
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	// Topology goes out before the client joins the broadcast set, so
	// frame writes never interleave with it.
	_ = conn.WriteMessage(websocket.TextMessage, s.topology)

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
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

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := map[string]any{
		"frame_id":      s.frameID,
		"uptime_s":      time.Since(s.startTime).Seconds(),
		"panels":        s.panels,
		"last_delay_ms": s.lastDelay.Milliseconds(),
	}
	_ = json.NewEncoder(w).Encode(resp)
}
