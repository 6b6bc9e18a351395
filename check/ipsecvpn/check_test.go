package ipsecvpn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckMissingTunnel(t *testing.T) {
	section := Section{
		"branch-1": {In: 1, Out: 2, Status: "2"},
	}

	result := Check("branch-9", section)
	assert.Equal(t, StateCritical, result.State)
	assert.Equal(t, "Tunnel 'branch-9' is missing", result.Summary)
	assert.Empty(t, result.Metrics, "missing tunnel emits no metrics")
}

func TestCheckUpTunnelZeroCounters(t *testing.T) {
	section := Section{
		"branch-1": {In: 0, Out: 0, Status: "2"},
	}

	result := Check("branch-1", section)
	assert.Equal(t, StateOK, result.State)
	assert.Equal(t, "Status: up, In: 0.00 bytes, Out: 0.00 bytes", result.Summary)
	assert.Equal(t, []Metric{
		{Name: "in_octets", Value: 0},
		{Name: "out_octets", Value: 0},
	}, result.Metrics)
}

func TestCheckDownTunnel(t *testing.T) {
	section := Section{
		"branch-1": {In: 2048, Out: 1536, Status: "1"},
	}

	result := Check("branch-1", section)
	assert.Equal(t, StateCritical, result.State)
	assert.Equal(t, "Status: down, In: 2.00 KB, Out: 1.50 KB", result.Summary)
	assert.Equal(t, []Metric{
		{Name: "in_octets", Value: 2048},
		{Name: "out_octets", Value: 1536},
	}, result.Metrics)
}

func TestCheckUnrecognizedStatusCode(t *testing.T) {
	section := Section{
		"branch-1": {In: 10, Out: 20, Status: "7"},
	}

	result := Check("branch-1", section)
	assert.Equal(t, StateUnknown, result.State)
	assert.Equal(t, "Status: unknown (code 7), In: 10.00 bytes, Out: 20.00 bytes", result.Summary)
	assert.Equal(t, []Metric{
		{Name: "in_octets", Value: 10},
		{Name: "out_octets", Value: 20},
	}, result.Metrics, "metrics are still emitted for unknown status codes")
}

func TestCheckMetricsMatchRawCounters(t *testing.T) {
	// Metrics carry the raw counters, unaffected by display rounding.
	section := Section{
		"branch-1": {In: 1048577, Out: 1023, Status: "2"},
	}

	result := Check("branch-1", section)
	assert.Equal(t, uint64(1048577), result.Metrics[0].Value)
	assert.Equal(t, uint64(1023), result.Metrics[1].Value)
}

func TestCheckIndependentOfOtherTunnels(t *testing.T) {
	section := Section{
		"branch-1": {In: 2048, Out: 1536, Status: "1"},
		"branch-2": {In: 0, Out: 0, Status: "2"},
	}

	assert.Equal(t, StateCritical, Check("branch-1", section).State)
	assert.Equal(t, StateOK, Check("branch-2", section).State)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "OK", StateOK.String())
	assert.Equal(t, "CRITICAL", StateCritical.String())
	assert.Equal(t, "UNKNOWN", StateUnknown.String())
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "Fortigate VPN Tunnel branch-1", ServiceName("branch-1"))
}
