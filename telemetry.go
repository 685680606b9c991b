package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// TelemetryServer broadcasts each car's pose, speed, and engine RPM to any
// connected WebSocket client, for a race viewer or replay tool to consume.
// Only started when SessionConfig.ListenAddr is non-empty.
type TelemetryServer struct {
	addr string

	clientsMu sync.RWMutex
	clients   map[*telemetryClient]struct{}

	upgrader websocket.Upgrader
}

type telemetryClient struct {
	conn *websocket.Conn
	send chan []byte
}

// CarFrame is one car's broadcast state for a single tick.
type CarFrame struct {
	Name    string  `json:"name"`
	PosX    float64 `json:"pos_x"`
	PosY    float64 `json:"pos_y"`
	Heading float64 `json:"heading"`
	Speed   float64 `json:"speed"`
	RPM     float64 `json:"rpm"`
	Halted  bool    `json:"halted"`
}

// RaceFrame is the JSON payload pushed to every connected client each tick.
type RaceFrame struct {
	State string     `json:"state"`
	Cars  []CarFrame `json:"cars"`
	Stamp int64      `json:"stamp_ms"`
}

// NewTelemetryServer builds a server that will listen on addr once Run is
// called. A blank addr means telemetry is disabled.
func NewTelemetryServer(addr string) *TelemetryServer {
	return &TelemetryServer{
		addr:    addr,
		clients: make(map[*telemetryClient]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run starts the HTTP/WebSocket listener in the background; it logs and
// returns without blocking the caller. A blank addr is a no-op.
func (s *TelemetryServer) Run() {
	if s.addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	go func() {
		log.Printf("[telemetry] listening on %s", s.addr)
		if err := http.ListenAndServe(s.addr, mux); err != nil {
			log.Printf("[telemetry] server stopped: %v", err)
		}
	}()
}

func (s *TelemetryServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[telemetry] upgrade error: %v", err)
		return
	}

	client := &telemetryClient{conn: conn, send: make(chan []byte, 64)}

	s.clientsMu.Lock()
	s.clients[client] = struct{}{}
	s.clientsMu.Unlock()

	go func() {
		defer conn.Close()
		for msg := range client.send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
	}()

	go func() {
		defer func() {
			s.clientsMu.Lock()
			delete(s.clients, client)
			s.clientsMu.Unlock()
			close(client.send)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// Broadcast sends one race frame to every connected client. A slow client
// is skipped rather than blocking the tick loop.
func (s *TelemetryServer) Broadcast(r *RaceManager) {
	s.clientsMu.RLock()
	n := len(s.clients)
	s.clientsMu.RUnlock()
	if n == 0 {
		return
	}

	frame := RaceFrame{
		State: r.State().String(),
		Stamp: time.Now().UnixMilli(),
	}
	for _, c := range r.Cars() {
		frame.Cars = append(frame.Cars, CarFrame{
			Name:    c.Name,
			PosX:    c.Car.Pos[0],
			PosY:    c.Car.Pos[1],
			Heading: c.Car.ForwardAngle,
			Speed:   c.Car.Speed(),
			RPM:     c.Car.EngineRPM,
			Halted:  c.Halted,
		})
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return
	}

	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	for client := range s.clients {
		select {
		case client.send <- data:
		default:
		}
	}
}
