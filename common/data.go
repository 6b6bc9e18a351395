package common

import (
	"time"
)

// ScrapeEntry - Outcome of one scrape of one device.
type ScrapeEntry struct {
	Time     time.Time
	Source   string
	Duration time.Duration
	Success  bool
}

// SourceDeviceEntry - Identity of a scraped device.
type SourceDeviceEntry struct {
	Time     time.Time
	Source   string
	Vendor   string
	Model    string
	Software string
	Other    string
}

// TunnelCheckEntry - Check result for one tracked tunnel in one scrape cycle.
// Metrics are keyed by metric name, values are raw byte counters.
type TunnelCheckEntry struct {
	Time      time.Time
	Source    string
	Tunnel    string
	State     int
	StateText string
	Summary   string
	Metrics   map[string]uint64
}
