package scraping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fortimon/fortimon/check/ipsecvpn"
)

var tunnelListOutput = []string{
	"list all ipsec tunnel in vd 0",
	"------------------------------------------------------",
	"name=branch-1 ver=1 serial=1 203.0.113.1:0->203.0.113.9:0 dst_mtu=1500 run_state=1 accept_traffic=1",
	"bound_if=3 lgwy=static/1 tun=intf/0 mode=auto/1 encap=none/512",
	"stat: rxp=2041 txp=1414 rxb=2048 txb=1536",
	"dpd: mode=on-demand on=1 idle=20000ms retry=3 count=0 seqno=11",
	"------------------------------------------------------",
	"name=branch-2 ver=1 serial=2 203.0.113.1:0->198.51.100.7:0 dst_mtu=1500 run_state=0 accept_traffic=0",
	"bound_if=3 lgwy=static/1 tun=intf/0 mode=auto/1 encap=none/512",
	"stat: rxp=0 txp=0 rxb=0 txb=0",
	"------------------------------------------------------",
}

func TestParseTunnelList(t *testing.T) {
	rows, skipped := parseTunnelList(tunnelListOutput)
	assert.Equal(t, 0, skipped)
	assert.Equal(t, []ipsecvpn.RawRow{
		{Name: "branch-1", InOctets: "2048", OutOctets: "1536", Status: "2"},
		{Name: "branch-2", InOctets: "0", OutOctets: "0", Status: "1"},
	}, rows)
}

func TestParseTunnelListMissingCounters(t *testing.T) {
	lines := []string{
		"name=branch-1 ver=1 serial=1 203.0.113.1:0->203.0.113.9:0 run_state=1",
		"bound_if=3 lgwy=static/1",
		"name=branch-2 ver=1 serial=2 203.0.113.1:0->198.51.100.7:0 run_state=0",
		"stat: rxp=1 txp=2 rxb=10 txb=20",
	}

	rows, skipped := parseTunnelList(lines)
	assert.Equal(t, 1, skipped, "block without a stat line is skipped")
	assert.Equal(t, []ipsecvpn.RawRow{
		{Name: "branch-2", InOctets: "10", OutOctets: "20", Status: "1"},
	}, rows)
}

func TestParseTunnelListEmpty(t *testing.T) {
	rows, skipped := parseTunnelList([]string{"list all ipsec tunnel in vd 0", ""})
	assert.Empty(t, rows)
	assert.Equal(t, 0, skipped)
}

func TestParseTunnelListKeepsFirstStatLine(t *testing.T) {
	lines := []string{
		"name=branch-1 ver=1 serial=1 203.0.113.1:0->203.0.113.9:0 run_state=1",
		"stat: rxp=1 txp=1 rxb=100 txb=200",
		"stat: rxp=9 txp=9 rxb=999 txb=999",
	}

	rows, skipped := parseTunnelList(lines)
	assert.Equal(t, 0, skipped)
	assert.Len(t, rows, 1)
	assert.Equal(t, "100", rows[0].InOctets)
	assert.Equal(t, "200", rows[0].OutOctets)
}

func TestFortigateVersionRegex(t *testing.T) {
	result := fortigateVersionRegex.FindStringSubmatch("Version: FortiGate-100F v7.0.12,build0523,230612 (GA)")
	assert.NotNil(t, result)
	assert.Equal(t, "FortiGate-100F v7.0.12,build0523,230612 (GA)", result[1])
}
