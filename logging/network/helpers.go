package network

import (
	"context"

	"boxwalk/server/logging"
)

const (
	// EventClientJoined is emitted when a client allocates a player slot.
	EventClientJoined logging.EventType = "network.client_joined"
	// EventClientDisconnected is emitted when a client leaves or times out.
	EventClientDisconnected logging.EventType = "network.client_disconnected"
)

// JoinPayload captures spawn metadata for a new client.
type JoinPayload struct {
	SpawnX float64 `json:"spawnX"`
	SpawnZ float64 `json:"spawnZ"`
}

// DisconnectPayload captures the reason a client left.
type DisconnectPayload struct {
	Reason string `json:"reason"`
}

// ClientJoined publishes a client join event.
func ClientJoined(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload JoinPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventClientJoined,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNetwork,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// ClientDisconnected publishes a client disconnect event.
func ClientDisconnected(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload DisconnectPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventClientDisconnected,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryNetwork,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}
