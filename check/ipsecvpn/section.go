package ipsecvpn

import (
	"fmt"
	"strconv"
)

// SNMP table for Fortigate IPsec Phase-2 tunnels (FORTINET-FORTIGATE-MIB::fgVpnTunTable).
// The transports fetch exactly these four columns, in this order.
const (
	TunnelTableBaseOID = ".1.3.6.1.4.1.12356.101.12.2.2.1"
	TunnelNameOID      = TunnelTableBaseOID + ".3"
	TunnelInOctetsOID  = TunnelTableBaseOID + ".18"
	TunnelOutOctetsOID = TunnelTableBaseOID + ".19"
	TunnelStatusOID    = TunnelTableBaseOID + ".20"
)

// FortinetEnterpriseOID - sysObjectID prefix identifying Fortinet devices.
const FortinetEnterpriseOID = ".1.3.6.1.4.1.12356"

// RawRow - One raw tunnel table row as received from a transport.
// All fields are unparsed text.
type RawRow struct {
	Name      string
	InOctets  string
	OutOctets string
	Status    string
}

// Tunnel - Parsed counters and raw status code for a single Phase-2 tunnel.
type Tunnel struct {
	In     uint64
	Out    uint64
	Status string
}

// Section - Parsed tunnel table for one device and one poll cycle, keyed by tunnel name.
// Built fresh every cycle, never mutated afterwards.
type Section map[string]Tunnel

// Parse - Parse raw table rows into a section.
// A non-numeric byte counter fails the whole parse, no partial section is returned.
// The status code is kept verbatim, it is only interpreted at check time.
// Duplicate tunnel names within one poll overwrite each other, last row wins.
func Parse(rows []RawRow) (Section, error) {
	section := make(Section, len(rows))
	for _, row := range rows {
		in, err := strconv.ParseUint(row.InOctets, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("tunnel %q: malformed inbound byte counter %q: %w", row.Name, row.InOctets, err)
		}
		out, err := strconv.ParseUint(row.OutOctets, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("tunnel %q: malformed outbound byte counter %q: %w", row.Name, row.OutOctets, err)
		}
		section[row.Name] = Tunnel{
			In:     in,
			Out:    out,
			Status: row.Status,
		}
	}
	return section, nil
}

// Discover - Return the names of all tunnels in the section.
// Exactly the key set, unordered and unfiltered.
func Discover(section Section) []string {
	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	return names
}
