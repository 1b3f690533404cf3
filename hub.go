package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"boxwalk/server/internal/world"
	"boxwalk/server/logging"
	levellog "boxwalk/server/logging/level"
	netlog "boxwalk/server/logging/network"
)

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// WriteMessage serializes writes to the underlying connection.
func (s *subscriber) WriteMessage(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(messageType, data)
}

type playerState struct {
	Player
	intentX       float64
	intentZ       float64
	lastInput     time.Time
	lastHeartbeat time.Time
	lastRTT       time.Duration
}

// Hub owns the connected players and drives the simulation against the
// level's navmesh.
type Hub struct {
	mu          sync.Mutex
	level       *world.Level
	players     map[string]*playerState
	subscribers map[string]*subscriber
	nextID      atomic.Uint64
	tick        atomic.Uint64

	publisher logging.Publisher
	logger    *log.Logger
}

// HubConfig bundles the collaborators a Hub needs.
type HubConfig struct {
	Level     *world.Level
	Publisher logging.Publisher
	Logger    *log.Logger
}

// NewHub constructs a hub bound to the given level.
func NewHub(cfg HubConfig) *Hub {
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		level:       cfg.Level,
		players:     make(map[string]*playerState),
		subscribers: make(map[string]*subscriber),
		publisher:   publisher,
		logger:      logger,
	}
}

func (h *Hub) snapshotLocked() []Player {
	players := make([]Player, 0, len(h.players))
	for _, player := range h.players {
		players = append(players, player.Player)
	}
	return players
}

func (h *Hub) levelSnapshotLocked() *levelSnapshot {
	objects := h.level.Objects()
	if len(objects) == 0 {
		return &levelSnapshot{}
	}
	snapshot := &levelSnapshot{Objects: make([]levelObject, 0, len(objects))}
	for _, obj := range objects {
		snapshot.Objects = append(snapshot.Objects, levelObject{
			ID:       obj.ID,
			X:        obj.X,
			Y:        obj.Y,
			Z:        obj.Z,
			Width:    obj.Width,
			Height:   obj.Height,
			Depth:    obj.Depth,
			Color:    obj.Color,
			Clipping: obj.Clipping,
		})
	}
	return snapshot
}

// Join allocates a player at the level spawn and announces the roster.
func (h *Hub) Join() JoinResponse {
	id := h.nextID.Add(1)
	playerID := fmt.Sprintf("player-%d", id)
	now := time.Now()

	cfg := h.level.Config()
	player := &playerState{
		Player:        Player{ID: playerID, X: cfg.SpawnX, Z: cfg.SpawnZ},
		lastHeartbeat: now,
	}

	h.mu.Lock()
	h.players[playerID] = player
	players := h.snapshotLocked()
	level := h.levelSnapshotLocked()
	h.mu.Unlock()

	netlog.ClientJoined(context.Background(), h.publisher, h.tick.Load(), logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer}, netlog.JoinPayload{
		SpawnX: cfg.SpawnX,
		SpawnZ: cfg.SpawnZ,
	}, nil)

	go h.BroadcastState(players)

	return JoinResponse{Ver: ProtocolVersion, ID: playerID, Players: players, Level: level}
}

// Subscribe attaches a websocket connection to an existing player.
func (h *Hub) Subscribe(playerID string, conn *websocket.Conn) (*subscriber, []Player, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, ok := h.players[playerID]
	if !ok {
		return nil, nil, false
	}

	state.lastHeartbeat = time.Now()

	if existing, ok := h.subscribers[playerID]; ok {
		existing.conn.Close()
	}

	sub := &subscriber{conn: conn}
	h.subscribers[playerID] = sub
	players := h.snapshotLocked()
	return sub, players, true
}

// Disconnect removes the player and closes its subscription, returning the
// updated roster, or nil if the player was unknown.
func (h *Hub) Disconnect(playerID string) []Player {
	h.mu.Lock()
	sub, subOK := h.subscribers[playerID]
	if subOK {
		delete(h.subscribers, playerID)
	}

	_, playerOK := h.players[playerID]
	if playerOK {
		delete(h.players, playerID)
	}

	var players []Player
	if playerOK {
		players = h.snapshotLocked()
	}
	h.mu.Unlock()

	if subOK {
		sub.conn.Close()
	}

	if !playerOK {
		return nil
	}

	netlog.ClientDisconnected(context.Background(), h.publisher, h.tick.Load(), logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer}, netlog.DisconnectPayload{
		Reason: "closed",
	}, nil)

	return players
}

// UpdateIntent stores the latest normalized movement intent for a player.
func (h *Hub) UpdateIntent(playerID string, dx, dz float64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, ok := h.players[playerID]
	if !ok {
		return false
	}

	length := math.Hypot(dx, dz)
	if length > 1 {
		dx /= length
		dz /= length
	}

	state.intentX = dx
	state.intentZ = dz
	state.lastInput = time.Now()
	return true
}

// UpdateHeartbeat refreshes liveness bookkeeping and reports the latest RTT.
func (h *Hub) UpdateHeartbeat(playerID string, receivedAt time.Time, clientSent int64) (time.Duration, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, ok := h.players[playerID]
	if !ok {
		return 0, false
	}

	state.lastHeartbeat = receivedAt

	if clientSent > 0 {
		clientTime := time.UnixMilli(clientSent)
		if clientTime.Before(receivedAt.Add(5 * time.Second)) {
			rtt := receivedAt.Sub(clientTime)
			if rtt < 0 {
				rtt = 0
			}
			state.lastRTT = rtt
		}
	}

	return state.lastRTT, true
}

// advance moves every player one tick against the current navmesh and prunes
// heartbeat timeouts.
func (h *Hub) advance(now time.Time, dt float64) ([]Player, []*subscriber) {
	mesh := h.level.Navmesh()
	cfg := h.level.Config()

	h.mu.Lock()

	toClose := make([]*subscriber, 0)
	for id, state := range h.players {
		if now.Sub(state.lastHeartbeat) > disconnectAfter {
			if sub, ok := h.subscribers[id]; ok {
				toClose = append(toClose, sub)
				delete(h.subscribers, id)
			}
			delete(h.players, id)
			h.logger.Printf("disconnecting %s due to heartbeat timeout", id)
			continue
		}

		if state.intentX == 0 && state.intentZ == 0 {
			continue
		}

		actor := world.MovementActor{
			X:       state.X,
			Z:       state.Z,
			IntentX: state.intentX,
			IntentZ: state.intentZ,
		}
		if err := world.MoveActor(&actor, dt, mesh, cfg.MoveSpeed); err != nil {
			h.logger.Printf("rejecting movement for %s: %v", id, err)
			continue
		}
		state.X = actor.X
		state.Z = actor.Z
	}

	players := h.snapshotLocked()
	h.mu.Unlock()

	return players, toClose
}

// RunSimulation drives the tick loop until stop closes.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = 1.0 / float64(tickRate)
			}
			last = now

			h.tick.Add(1)
			players, toClose := h.advance(now, dt)
			for _, sub := range toClose {
				sub.conn.Close()
			}
			h.BroadcastState(players)
		}
	}
}

// BroadcastState pushes the roster snapshot to every subscriber. A nil
// roster is resolved from current state.
func (h *Hub) BroadcastState(players []Player) {
	if players == nil {
		h.mu.Lock()
		players = h.snapshotLocked()
		h.mu.Unlock()
	}

	msg := stateMessage{
		Ver:        ProtocolVersion,
		Type:       "state",
		Players:    players,
		Tick:       h.tick.Load(),
		ServerTime: time.Now().UnixMilli(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Printf("failed to marshal state message: %v", err)
		return
	}

	h.mu.Lock()
	subs := make(map[string]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		if err := sub.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Printf("failed to send update to %s: %v", id, err)
			if players := h.Disconnect(id); players != nil {
				go h.BroadcastState(players)
			}
		}
	}
}

// MarshalInitialState encodes the first state message for a fresh
// subscription.
func (h *Hub) MarshalInitialState(players []Player) ([]byte, error) {
	msg := stateMessage{
		Ver:        ProtocolVersion,
		Type:       "state",
		Players:    players,
		Tick:       h.tick.Load(),
		ServerTime: time.Now().UnixMilli(),
	}
	return json.Marshal(msg)
}

// NavmeshSnapshot exposes the active navmesh for the debug endpoint.
func (h *Hub) NavmeshSnapshot() NavmeshSnapshot {
	mesh := h.level.Navmesh()
	return NavmeshSnapshot{
		Padding: mesh.Padding(),
		Regions: mesh.Regions(),
	}
}

// ResetLevel rebuilds the navmesh from a replacement object set and
// rebroadcasts. Invalid geometry leaves the running level untouched.
func (h *Hub) ResetLevel(objects []world.Object) error {
	h.mu.Lock()
	err := h.level.Rebuild(objects)
	h.mu.Unlock()
	if err != nil {
		return err
	}

	levellog.LevelReset(context.Background(), h.publisher, h.tick.Load(), logging.EntityRef{Kind: logging.EntityKindLevel}, levellog.LevelResetPayload{
		Objects: len(objects),
	}, nil)

	go h.BroadcastState(nil)
	return nil
}

// CurrentTick reports the simulation tick counter.
func (h *Hub) CurrentTick() uint64 {
	return h.tick.Load()
}

// DiagnosticsSnapshot lists connection liveness for the diagnostics endpoint.
func (h *Hub) DiagnosticsSnapshot() []diagnosticsPlayer {
	h.mu.Lock()
	defer h.mu.Unlock()

	players := make([]diagnosticsPlayer, 0, len(h.players))
	for _, state := range h.players {
		players = append(players, diagnosticsPlayer{
			ID:            state.ID,
			LastHeartbeat: state.lastHeartbeat.UnixMilli(),
			RTTMillis:     state.lastRTT.Milliseconds(),
		})
	}
	return players
}
