// Package sinks contains the map surfaces the tracker publishes marker commands to
package sinks

import (
	"net/http"
	"slices"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/flitlabs/dispatch_tracker/internal/app/pkg/tracker"
	"github.com/google/uuid"
	"github.com/lesismal/nbio/nbhttp/websocket"
	"github.com/rs/zerolog/log"
)

// Conn is a connected map client
type Conn interface {
	WriteMessage(messageType websocket.MessageType, data []byte) error
	Close() error
}

// Hub is a map surface shared by every websocket client that displays it. It keeps the
// markers that are currently drawn so clients that connect late start from the same state
type Hub struct {
	surface string

	mu      sync.Mutex
	markers map[string]tracker.Marker
	notice  string
	clients map[uuid.UUID]Conn
}

// NewHub creates the hub of a map surface
func NewHub(surface string) *Hub {
	return &Hub{
		surface: surface,
		markers: map[string]tracker.Marker{},
		clients: map[uuid.UUID]Conn{},
	}
}

// Surface is the name of the map surface
func (h *Hub) Surface() string {
	return h.surface
}

// Apply updates the snapshot and broadcasts the command to every client
func (h *Hub) Apply(cmd tracker.MarkerCommand) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch cmd.Op {
	case tracker.Upsert:
		if cmd.Marker == nil {
			return
		}
		h.markers[cmd.Marker.ID] = *cmd.Marker
	case tracker.Remove:
		delete(h.markers, cmd.ID)
	case tracker.Clear:
		h.markers = map[string]tracker.Marker{}
		h.notice = ""
	case tracker.Notice:
		h.notice = cmd.Message
	}

	if len(h.clients) == 0 {
		return
	}

	payload, err := sonic.Marshal(cmd)
	if err != nil {
		log.Error().Err(err).Str("surface", h.surface).Msg("failed to marshal the marker command")
		return
	}

	for id, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Error().
				Err(err).
				Str("surface", h.surface).
				Str("client", id.String()).
				Msg("error sending data to the websocket client")
			delete(h.clients, id)
			conn.Close()
		}
	}
}

// Join sends the current snapshot to the client and subscribes it to every later command
func (h *Hub) Join(conn Conn) (uuid.UUID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, cmd := range h.snapshotLocked() {
		payload, err := sonic.Marshal(cmd)
		if err != nil {
			return uuid.Nil, err
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return uuid.Nil, err
		}
	}

	id := uuid.New()
	h.clients[id] = conn
	return id, nil
}

// Leave unsubscribes the client
func (h *Hub) Leave(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, id)
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

// Markers returns the markers that are currently drawn on the surface
func (h *Hub) Markers() []tracker.Marker {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.markersLocked()
}

// Notice returns the placeholder that is currently shown on the surface
func (h *Hub) Notice() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.notice
}

func (h *Hub) markersLocked() []tracker.Marker {
	markers := make([]tracker.Marker, 0, len(h.markers))
	for _, m := range h.markers {
		markers = append(markers, m)
	}
	slices.SortFunc(markers, func(a, b tracker.Marker) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return markers
}

func (h *Hub) snapshotLocked() []tracker.MarkerCommand {
	commands := []tracker.MarkerCommand{{Op: tracker.Clear}}
	for _, m := range h.markersLocked() {
		m := m
		commands = append(commands, tracker.MarkerCommand{Op: tracker.Upsert, Marker: &m, ID: m.ID})
	}
	if h.notice != "" {
		commands = append(commands, tracker.MarkerCommand{Op: tracker.Notice, Message: h.notice})
	}
	return commands
}

// Handler upgrades the request to a websocket connection subscribed to the surface
func (h *Hub) Handler(w http.ResponseWriter, r *http.Request) {
	var (
		mu sync.Mutex
		id uuid.UUID
	)

	upgrader := websocket.NewUpgrader()
	upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	upgrader.OnOpen(func(c *websocket.Conn) {
		log.Info().Str("addr", c.RemoteAddr().String()).Str("surface", h.surface).Msg("connection opened")

		mu.Lock()
		defer mu.Unlock()

		var err error
		id, err = h.Join(c)
		if err != nil {
			log.Error().Err(err).Str("surface", h.surface).Msg("failed to send the marker snapshot")
			c.Close()
		}
	})
	upgrader.OnClose(func(c *websocket.Conn, err error) {
		if err != nil {
			log.Error().Err(err).Str("addr", c.RemoteAddr().String()).Msg("connection closed with error")
		} else {
			log.Info().Str("addr", c.RemoteAddr().String()).Msg("connection closed")
		}
		mu.Lock()
		defer mu.Unlock()

		h.Leave(id)
	})

	_, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("error occured while upgrading the websocket connection")
		return
	}
}
