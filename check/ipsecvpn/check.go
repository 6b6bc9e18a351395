package ipsecvpn

import (
	"fmt"
)

// State - Health verdict for one tunnel check.
type State int

// Check states, following the usual monitoring exit codes.
const (
	StateOK       State = 0
	StateCritical State = 2
	StateUnknown  State = 3
)

func (state State) String() string {
	switch state {
	case StateOK:
		return "OK"
	case StateCritical:
		return "CRITICAL"
	case StateUnknown:
		return "UNKNOWN"
	default:
		return fmt.Sprintf("State(%d)", int(state))
	}
}

// Metric - One named numeric measurement emitted alongside a verdict.
type Metric struct {
	Name  string
	Value uint64
}

// Result - Outcome of checking one tunnel: verdict, operator summary and metrics.
// A missing tunnel yields no metrics, every other outcome yields both octet counters.
type Result struct {
	State   State
	Summary string
	Metrics []Metric
}

// Metric names are a stable contract with downstream dashboards and thresholds.
const (
	MetricInOctets  = "in_octets"
	MetricOutOctets = "out_octets"
)

// ServiceName - Display name for one tracked tunnel.
func ServiceName(item string) string {
	return fmt.Sprintf("Fortigate VPN Tunnel %v", item)
}

// statusLabels - Fixed vocabulary mapping raw fgVpnTunEntStatus codes to labels.
var statusLabels = map[string]string{
	"1": "down",
	"2": "up",
}

// Check - Evaluate the health of a single tunnel against a parsed section.
// Stateless, each call only depends on the given section.
func Check(item string, section Section) Result {
	tunnel, found := section[item]
	if !found {
		return Result{
			State:   StateCritical,
			Summary: fmt.Sprintf("Tunnel '%v' is missing", item),
		}
	}

	state := StateUnknown
	label, known := statusLabels[tunnel.Status]
	if !known {
		// Device reported a status code outside the MIB vocabulary.
		// Degrade instead of failing so one odd code can't kill the check.
		label = fmt.Sprintf("unknown (code %v)", tunnel.Status)
	} else {
		switch label {
		case "up":
			state = StateOK
		case "down":
			state = StateCritical
		}
	}

	return Result{
		State: state,
		Summary: fmt.Sprintf("Status: %v, In: %v, Out: %v",
			label, humanBytes(tunnel.In), humanBytes(tunnel.Out)),
		Metrics: []Metric{
			{Name: MetricInOctets, Value: tunnel.In},
			{Name: MetricOutOctets, Value: tunnel.Out},
		},
	}
}
