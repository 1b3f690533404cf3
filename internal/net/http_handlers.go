package net

import (
	"encoding/json"
	"io"
	"log"
	nethttp "net/http"
	"time"

	"github.com/gorilla/websocket"

	server "boxwalk/server"
	"boxwalk/server/internal/world"
)

type HTTPHandlerConfig struct {
	Logger *log.Logger
}

type clientMessage struct {
	Ver    int     `json:"ver,omitempty"`
	Type   string  `json:"type"`
	DX     float64 `json:"dx"`
	DZ     float64 `json:"dz"`
	SentAt int64   `json:"sentAt"`
}

type heartbeatMessage struct {
	Ver        int    `json:"ver"`
	Type       string `json:"type"`
	ServerTime int64  `json:"serverTime"`
	ClientTime int64  `json:"clientTime"`
	RTTMillis  int64  `json:"rtt"`
}

// NewHTTPHandler builds the server mux: liveness and diagnostics endpoints,
// the navmesh debug view, level reset, join, and the websocket session
// entrypoint.
func NewHTTPHandler(hub *server.Hub, cfg HTTPHandlerConfig) nethttp.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	mux := nethttp.NewServeMux()

	mux.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		payload := struct {
			Status     string `json:"status"`
			ServerTime int64  `json:"serverTime"`
			Players    any    `json:"players"`
			Tick       uint64 `json:"tick"`
			TickRate   int    `json:"tickRate"`
			Heartbeat  int64  `json:"heartbeatMillis"`
		}{
			Status:     "ok",
			ServerTime: time.Now().UnixMilli(),
			Players:    hub.DiagnosticsSnapshot(),
			Tick:       hub.CurrentTick(),
			TickRate:   server.TickRate(),
			Heartbeat:  server.HeartbeatInterval().Milliseconds(),
		}

		data, err := json.Marshal(payload)
		if err != nil {
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	mux.HandleFunc("/level/navmesh", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodGet {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}

		data, err := json.Marshal(hub.NavmeshSnapshot())
		if err != nil {
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	mux.HandleFunc("/level/reset", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}

		var req struct {
			Objects []world.Object `json:"objects"`
		}
		if r.Body != nil {
			defer r.Body.Close()
			decoder := json.NewDecoder(r.Body)
			if err := decoder.Decode(&req); err != nil && err != io.EOF {
				httpError(w, "invalid payload", nethttp.StatusBadRequest)
				return
			}
		}

		if err := hub.ResetLevel(req.Objects); err != nil {
			logger.Printf("level reset rejected: %v", err)
			httpError(w, "invalid geometry", nethttp.StatusBadRequest)
			return
		}

		response := struct {
			Status  string `json:"status"`
			Navmesh any    `json:"navmesh"`
		}{
			Status:  "ok",
			Navmesh: hub.NavmeshSnapshot(),
		}

		data, err := json.Marshal(response)
		if err != nil {
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	mux.HandleFunc("/join", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}

		join := hub.Join()
		data, err := json.Marshal(join)
		if err != nil {
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *nethttp.Request) bool {
			return true
		},
	}

	mux.HandleFunc("/ws", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		playerID := r.URL.Query().Get("id")
		if playerID == "" {
			httpError(w, "missing id", nethttp.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Printf("upgrade failed for %s: %v", playerID, err)
			return
		}

		sub, snapshot, ok := hub.Subscribe(playerID, conn)
		if !ok {
			message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unknown player")
			conn.WriteMessage(websocket.CloseMessage, message)
			conn.Close()
			return
		}

		data, err := hub.MarshalInitialState(snapshot)
		if err != nil {
			logger.Printf("failed to marshal initial state for %s: %v", playerID, err)
			disconnect(hub, playerID)
			return
		}

		if err := sub.WriteMessage(websocket.TextMessage, data); err != nil {
			disconnect(hub, playerID)
			return
		}

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				disconnect(hub, playerID)
				return
			}

			var msg clientMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				logger.Printf("discarding malformed message from %s: %v", playerID, err)
				continue
			}

			switch msg.Type {
			case "input":
				if !hub.UpdateIntent(playerID, msg.DX, msg.DZ) {
					logger.Printf("input ignored for unknown player %s", playerID)
				}
			case "heartbeat":
				now := time.Now()
				rtt, ok := hub.UpdateHeartbeat(playerID, now, msg.SentAt)
				if !ok {
					continue
				}

				ack := heartbeatMessage{
					Ver:        server.ProtocolVersion,
					Type:       "heartbeat",
					ServerTime: now.UnixMilli(),
					ClientTime: msg.SentAt,
					RTTMillis:  rtt.Milliseconds(),
				}

				data, err := json.Marshal(ack)
				if err != nil {
					logger.Printf("failed to marshal heartbeat ack for %s: %v", playerID, err)
					continue
				}

				if err := sub.WriteMessage(websocket.TextMessage, data); err != nil {
					disconnect(hub, playerID)
					return
				}
			default:
				logger.Printf("unknown message type %q from %s", msg.Type, playerID)
			}
		}
	})

	return mux
}

func disconnect(hub *server.Hub, playerID string) {
	if players := hub.Disconnect(playerID); players != nil {
		go hub.BroadcastState(players)
	}
}

func httpError(w nethttp.ResponseWriter, msg string, code int) {
	nethttp.Error(w, msg, code)
}
