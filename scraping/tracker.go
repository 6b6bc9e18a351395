package scraping

import (
	"sort"
	"sync"
	"time"

	"github.com/fortimon/fortimon/check/ipsecvpn"
)

// TunnelStatus - Latest check result for one tracked tunnel.
type TunnelStatus struct {
	Time   time.Time
	Source string
	Tunnel string
	Result ipsecvpn.Result
}

// tunnelTracker - Registry of tracked tunnels per device plus their latest results.
// Discovery only ever adds tunnels. A tunnel which disappears from the device stays
// tracked and keeps reporting as missing instead of silently vanishing.
type tunnelTracker struct {
	mutex   sync.Mutex
	tracked map[string]map[string]bool
	latest  map[string]map[string]TunnelStatus
}

var globalTracker = &tunnelTracker{
	tracked: make(map[string]map[string]bool),
	latest:  make(map[string]map[string]TunnelStatus),
}

// track - Merge newly discovered tunnel names for a device and return all tracked names, sorted.
func (tracker *tunnelTracker) track(source string, names []string) []string {
	tracker.mutex.Lock()
	defer tracker.mutex.Unlock()

	deviceTunnels, found := tracker.tracked[source]
	if !found {
		deviceTunnels = make(map[string]bool)
		tracker.tracked[source] = deviceTunnels
	}
	for _, name := range names {
		deviceTunnels[name] = true
	}

	allNames := make([]string, 0, len(deviceTunnels))
	for name := range deviceTunnels {
		allNames = append(allNames, name)
	}
	sort.Strings(allNames)
	return allNames
}

// store - Record the latest check result for one tunnel.
func (tracker *tunnelTracker) store(status TunnelStatus) {
	tracker.mutex.Lock()
	defer tracker.mutex.Unlock()

	deviceResults, found := tracker.latest[status.Source]
	if !found {
		deviceResults = make(map[string]TunnelStatus)
		tracker.latest[status.Source] = deviceResults
	}
	deviceResults[status.Tunnel] = status
}

// statuses - Snapshot of the latest results across all devices.
func (tracker *tunnelTracker) statuses() []TunnelStatus {
	tracker.mutex.Lock()
	defer tracker.mutex.Unlock()

	var all []TunnelStatus
	for _, deviceResults := range tracker.latest {
		for _, status := range deviceResults {
			all = append(all, status)
		}
	}
	return all
}

// LatestTunnelStatuses - Latest check result per tracked tunnel, for the metrics endpoint.
func LatestTunnelStatuses() []TunnelStatus {
	return globalTracker.statuses()
}
