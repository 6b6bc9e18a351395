package scraping

import (
	"fmt"
	"regexp"
	"time"

	"github.com/fortimon/fortimon/check/ipsecvpn"
	"github.com/fortimon/fortimon/common"
	"github.com/fortimon/fortimon/db"
)

var fortigateVersionRegex = regexp.MustCompile(`^Version: +(.+[^ ]) *$`)
var fortigateTunnelNameRegex = regexp.MustCompile(`^name=([^ ]+) .*run_state=([0-9]+)`)
var fortigateTunnelStatRegex = regexp.MustCompile(`^stat:.* rxb=([0-9]+) txb=([0-9]+)`)

// FortigateSSH - Scrape a Fortigate firewall CLI using SSH.
func FortigateSSH(device common.Device, startTime time.Time) bool {
	if !fortigateSSHVersion(device, startTime) {
		return false
	}

	lines, ok := runSSHCommand(device, "diagnose vpn tunnel list")
	if !ok {
		return false
	}
	rows, skipped := parseTunnelList(lines)
	if skipped > 0 {
		showDeviceFailure(device, fmt.Sprintf("Tunnel list entries without counters: %v", skipped))
	}
	return checkTunnels(device, startTime, rows)
}

func fortigateSSHVersion(device common.Device, startTime time.Time) bool {
	lines, ok := runSSHCommand(device, "get system status")
	if !ok {
		return false
	}

	software := ""
	for _, line := range lines {
		versionResult := fortigateVersionRegex.FindStringSubmatch(line)
		if versionResult != nil {
			software = versionResult[1]
		}
	}

	sourceDeviceEntry := common.SourceDeviceEntry{
		Time:     startTime,
		Source:   device.Address,
		Vendor:   "Fortinet",
		Software: software,
	}
	db.StoreSourceDeviceEntry(sourceDeviceEntry)

	return true
}

// parseTunnelList - Parse "diagnose vpn tunnel list" output into raw table rows.
// Tunnel blocks start with a name= line carrying the run state, the byte counters
// follow on a stat: line. Blocks without counters are skipped and counted.
// The run state is folded into the same status vocabulary the SNMP table uses.
func parseTunnelList(lines []string) ([]ipsecvpn.RawRow, int) {
	var rows []ipsecvpn.RawRow
	skipped := 0

	name := ""
	status := ""
	haveCounters := false
	flush := func() {
		if name != "" && !haveCounters {
			skipped++
		}
		name = ""
		status = ""
		haveCounters = false
	}

	for _, line := range lines {
		nameResult := fortigateTunnelNameRegex.FindStringSubmatch(line)
		if nameResult != nil {
			flush()
			name = nameResult[1]
			if nameResult[2] == "1" {
				status = "2" // up
			} else {
				status = "1" // down
			}
			continue
		}
		statResult := fortigateTunnelStatRegex.FindStringSubmatch(line)
		if statResult != nil && name != "" && !haveCounters {
			rows = append(rows, ipsecvpn.RawRow{
				Name:      name,
				InOctets:  statResult[1],
				OutOctets: statResult[2],
				Status:    status,
			})
			haveCounters = true
		}
	}
	flush()

	return rows, skipped
}
