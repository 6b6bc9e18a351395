package scraping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fortimon/fortimon/check/ipsecvpn"
)

func newTestTracker() *tunnelTracker {
	return &tunnelTracker{
		tracked: make(map[string]map[string]bool),
		latest:  make(map[string]map[string]TunnelStatus),
	}
}

func TestTrackerKeepsVanishedTunnels(t *testing.T) {
	tracker := newTestTracker()

	names := tracker.track("fw1.example.net", []string{"branch-1", "branch-2"})
	assert.Equal(t, []string{"branch-1", "branch-2"}, names)

	// branch-2 disappeared from the device, it must stay tracked.
	names = tracker.track("fw1.example.net", []string{"branch-1", "branch-3"})
	assert.Equal(t, []string{"branch-1", "branch-2", "branch-3"}, names)
}

func TestTrackerPerDevice(t *testing.T) {
	tracker := newTestTracker()

	tracker.track("fw1.example.net", []string{"branch-1"})
	names := tracker.track("fw2.example.net", []string{"hq"})
	assert.Equal(t, []string{"hq"}, names, "devices do not share tracked tunnels")
}

func TestTrackerLatestResults(t *testing.T) {
	tracker := newTestTracker()
	now := time.Now()

	tracker.store(TunnelStatus{
		Time:   now,
		Source: "fw1.example.net",
		Tunnel: "branch-1",
		Result: ipsecvpn.Result{State: ipsecvpn.StateOK, Summary: "Status: up, In: 0.00 bytes, Out: 0.00 bytes"},
	})
	tracker.store(TunnelStatus{
		Time:   now,
		Source: "fw1.example.net",
		Tunnel: "branch-1",
		Result: ipsecvpn.Result{State: ipsecvpn.StateCritical, Summary: "Tunnel 'branch-1' is missing"},
	})

	statuses := tracker.statuses()
	assert.Len(t, statuses, 1, "only the latest result per tunnel is kept")
	assert.Equal(t, ipsecvpn.StateCritical, statuses[0].Result.State)
}
