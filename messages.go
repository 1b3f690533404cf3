package server

import "boxwalk/server/internal/nav"

// Player is the client-visible snapshot of one connected walker.
type Player struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Z  float64 `json:"z"`
}

// JoinResponse answers a join request with the assigned id, the current
// roster, and the static level geometry.
type JoinResponse struct {
	Ver     int            `json:"ver"`
	ID      string         `json:"id"`
	Players []Player       `json:"players"`
	Level   *levelSnapshot `json:"level,omitempty"`
}

type stateMessage struct {
	Ver        int      `json:"ver"`
	Type       string   `json:"type"`
	Players    []Player `json:"players"`
	Tick       uint64   `json:"tick"`
	ServerTime int64    `json:"serverTime"`
}

// levelSnapshot ships the static geometry once at join time so clients can
// render it without a separate fetch.
type levelSnapshot struct {
	Objects []levelObject `json:"objects"`
}

type levelObject struct {
	ID       string     `json:"id"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Z        float64    `json:"z"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Depth    float64    `json:"depth"`
	Color    [3]float64 `json:"color"`
	Clipping bool       `json:"clipping"`
}

// NavmeshSnapshot is the debug view of the active navmesh.
type NavmeshSnapshot struct {
	Padding float64      `json:"padding"`
	Regions []nav.Region `json:"regions"`
}

type diagnosticsPlayer struct {
	ID            string `json:"id"`
	LastHeartbeat int64  `json:"lastHeartbeat"`
	RTTMillis     int64  `json:"rttMillis"`
}
