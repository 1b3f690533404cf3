package server

import (
	"math"
	"testing"
	"time"

	"boxwalk/server/internal/world"
)

func newTestHub(t *testing.T, objects []world.Object) *Hub {
	t.Helper()
	level, err := world.NewLevel(world.DefaultConfig(), objects, world.Deps{})
	if err != nil {
		t.Fatalf("NewLevel failed: %v", err)
	}
	return NewHub(HubConfig{Level: level})
}

func TestJoinAssignsDistinctIDs(t *testing.T) {
	hub := newTestHub(t, nil)

	first := hub.Join()
	second := hub.Join()

	if first.ID == second.ID {
		t.Fatalf("expected distinct player ids, both %q", first.ID)
	}
	if len(second.Players) != 2 {
		t.Fatalf("expected 2 players in roster, got %d", len(second.Players))
	}
	if second.Level == nil {
		t.Fatalf("join response must carry the level snapshot")
	}
}

func TestJoinSpawnsAtConfiguredPosition(t *testing.T) {
	hub := newTestHub(t, world.DefaultObjects())
	join := hub.Join()

	if len(join.Players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(join.Players))
	}
	if join.Players[0].X != world.DefaultSpawnX || join.Players[0].Z != world.DefaultSpawnZ {
		t.Fatalf("unexpected spawn (%v, %v)", join.Players[0].X, join.Players[0].Z)
	}
}

func TestAdvanceMovesPlayer(t *testing.T) {
	hub := newTestHub(t, nil)
	join := hub.Join()

	if !hub.UpdateIntent(join.ID, 1, 0) {
		t.Fatalf("UpdateIntent failed for %s", join.ID)
	}

	players, toClose := hub.advance(time.Now(), 0.5)
	if len(toClose) != 0 {
		t.Fatalf("no subscriptions should close, got %d", len(toClose))
	}
	if len(players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(players))
	}

	wantX := world.DefaultMoveSpeed * 0.5
	if math.Abs(players[0].X-wantX) > 1e-9 {
		t.Fatalf("expected x=%v after advance, got %v", wantX, players[0].X)
	}
}

func TestAdvanceVetoesBlockedAxis(t *testing.T) {
	// Padded wall directly in front of spawn on +x.
	objects := []world.Object{
		{ID: "wall", X: 1, Z: -5, Width: 2, Height: 2, Depth: 10, Clipping: true},
	}
	hub := newTestHub(t, objects)
	join := hub.Join()

	if !hub.UpdateIntent(join.ID, 1, 0) {
		t.Fatalf("UpdateIntent failed")
	}

	// dt keeps the step small enough to land inside the padded wall rather
	// than tunneling past it.
	players, _ := hub.advance(time.Now(), 0.25)
	if players[0].X != 0 {
		t.Fatalf("movement into the wall must be vetoed, got x=%v", players[0].X)
	}
}

func TestAdvancePrunesHeartbeatTimeouts(t *testing.T) {
	hub := newTestHub(t, nil)
	join := hub.Join()

	players, _ := hub.advance(time.Now().Add(disconnectAfter+time.Second), 1.0/float64(tickRate))
	if len(players) != 0 {
		t.Fatalf("expected timed-out player %s to be pruned, roster=%v", join.ID, players)
	}
}

func TestUpdateIntentNormalizesLongVectors(t *testing.T) {
	hub := newTestHub(t, nil)
	join := hub.Join()

	if !hub.UpdateIntent(join.ID, 30, 40) {
		t.Fatalf("UpdateIntent failed")
	}

	players, _ := hub.advance(time.Now(), 1)
	speed := math.Hypot(players[0].X, players[0].Z)
	if math.Abs(speed-world.DefaultMoveSpeed) > 1e-9 {
		t.Fatalf("oversized intent must clamp to move speed, got %v", speed)
	}
}

func TestUpdateIntentUnknownPlayer(t *testing.T) {
	hub := newTestHub(t, nil)
	if hub.UpdateIntent("player-404", 1, 0) {
		t.Fatalf("unknown player must be rejected")
	}
}

func TestUpdateHeartbeatTracksRTT(t *testing.T) {
	hub := newTestHub(t, nil)
	join := hub.Join()

	now := time.Now()
	rtt, ok := hub.UpdateHeartbeat(join.ID, now, now.Add(-250*time.Millisecond).UnixMilli())
	if !ok {
		t.Fatalf("UpdateHeartbeat failed")
	}
	if rtt < 200*time.Millisecond || rtt > 300*time.Millisecond {
		t.Fatalf("expected ~250ms RTT, got %v", rtt)
	}

	if _, ok := hub.UpdateHeartbeat("player-404", now, 0); ok {
		t.Fatalf("unknown player must be rejected")
	}
}

func TestNavmeshSnapshot(t *testing.T) {
	hub := newTestHub(t, world.DefaultObjects())

	snapshot := hub.NavmeshSnapshot()
	if snapshot.Padding != world.DefaultPadding {
		t.Fatalf("expected padding %v, got %v", world.DefaultPadding, snapshot.Padding)
	}
	if len(snapshot.Regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(snapshot.Regions))
	}
}

func TestResetLevelSwapsGeometry(t *testing.T) {
	hub := newTestHub(t, world.DefaultObjects())

	if err := hub.ResetLevel(nil); err != nil {
		t.Fatalf("ResetLevel failed: %v", err)
	}
	if got := len(hub.NavmeshSnapshot().Regions); got != 0 {
		t.Fatalf("expected empty navmesh after reset, got %d regions", got)
	}

	bad := []world.Object{{ID: "bad", Width: -1, Depth: 1, Clipping: true}}
	if err := hub.ResetLevel(bad); err == nil {
		t.Fatalf("expected malformed geometry to be rejected")
	}
}

func TestDiagnosticsSnapshot(t *testing.T) {
	hub := newTestHub(t, nil)
	join := hub.Join()

	diag := hub.DiagnosticsSnapshot()
	if len(diag) != 1 {
		t.Fatalf("expected 1 diagnostics entry, got %d", len(diag))
	}
	if diag[0].ID != join.ID {
		t.Fatalf("expected entry for %s, got %s", join.ID, diag[0].ID)
	}
}
