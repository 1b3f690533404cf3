package server

import "time"

// ProtocolVersion tags every server-to-client message.
const ProtocolVersion = 1

const (
	writeWait         = 10 * time.Second
	tickRate          = 15 // simulation ticks per second
	heartbeatInterval = 2 * time.Second
	disconnectAfter   = 3 * heartbeatInterval
)

// TickRate reports the simulation cadence in ticks per second.
func TickRate() int {
	return tickRate
}

// HeartbeatInterval reports how often clients are expected to heartbeat.
func HeartbeatInterval() time.Duration {
	return heartbeatInterval
}
