package ipsecvpn

import (
	"fmt"
)

var byteUnits = [...]string{"bytes", "KB", "MB", "GB", "TB"}

// humanBytes - Render a byte counter as a human-readable string with two decimals.
// Values beyond 1024 TB stay in TB rather than moving past the unit table.
func humanBytes(numBytes uint64) string {
	value := float64(numBytes)
	for i, unit := range byteUnits {
		if value < 1024.0 || i == len(byteUnits)-1 {
			return fmt.Sprintf("%.2f %v", value, unit)
		}
		value /= 1024.0
	}
	// Unreachable, the loop always returns on the last unit.
	return fmt.Sprintf("%.2f %v", value, byteUnits[len(byteUnits)-1])
}
