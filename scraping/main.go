package scraping

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fortimon/fortimon/check/ipsecvpn"
	"github.com/fortimon/fortimon/common"
	"github.com/fortimon/fortimon/db"
	"github.com/fortimon/fortimon/util"
)

// StartScraper - Start device scraper in background.
func StartScraper(waitGroup *sync.WaitGroup, shutdown *util.ShutdownChannelDistributor) {
	// Setup shutdown signal and waitgroup
	shutdownChannel := make(chan bool, 1)
	if !shutdown.AddListener(shutdownChannel) {
		return
	}
	waitGroup.Add(1)

	go func() {
		defer waitGroup.Done()
		defer log.Info("Scraper stopped")

		// Scrape immediately
		scrapeAll()

		for {
			select {
			case <-time.Tick(time.Duration(common.GlobalConfig.ScrapeIntervalSeconds) * time.Second):
				scrapeAll()
			case <-shutdownChannel:
				return
			}
		}
	}()

	log.Info("Scraper started")
}

func scrapeAll() {
	log.Trace("Scraping all devices")
	for _, device := range common.GlobalDevices {
		go scrapeSingle(device)
	}
}

func scrapeSingle(device common.Device) {
	log.WithFields(log.Fields{
		"device": device.Address,
	}).Trace("Scraping device")
	startTime := time.Now()

	// Call appropriate scraper
	var success = false
	switch connectionType := device.ConnectionType; connectionType {
	case common.ConnectionTypeFortigateSNMP:
		success = FortigateSNMP(device, startTime)
	case common.ConnectionTypeFortigateSSH:
		success = FortigateSSH(device, startTime)
	}

	// Record time and duration
	duration := time.Since(startTime)
	scrapeEntry := common.ScrapeEntry{
		Time:     startTime,
		Source:   device.Address,
		Duration: duration,
		Success:  success,
	}
	db.StoreScrapeEntry(scrapeEntry)
}

// checkTunnels - Run the tunnel checks for one device against one cycle's raw table rows.
// A parse failure aborts the whole cycle for the device, no partial results are stored.
// Each tracked tunnel is checked independently, one bad tunnel never blocks the others.
func checkTunnels(device common.Device, startTime time.Time, rows []ipsecvpn.RawRow) bool {
	section, err := ipsecvpn.Parse(rows)
	if !checkDeviceFailure(device, "Failed to parse tunnel table", err) {
		return false
	}

	tracked := globalTracker.track(device.Address, ipsecvpn.Discover(section))
	for _, item := range tracked {
		result := ipsecvpn.Check(item, section)

		log.WithFields(log.Fields{
			"device":  device.Address,
			"service": ipsecvpn.ServiceName(item),
			"state":   result.State.String(),
		}).Tracef("Tunnel checked: %v", result.Summary)

		status := TunnelStatus{
			Time:   startTime,
			Source: device.Address,
			Tunnel: item,
			Result: result,
		}
		globalTracker.store(status)

		metrics := make(map[string]uint64, len(result.Metrics))
		for _, metric := range result.Metrics {
			metrics[metric.Name] = metric.Value
		}
		db.StoreTunnelCheckEntry(common.TunnelCheckEntry{
			Time:      startTime,
			Source:    device.Address,
			Tunnel:    item,
			State:     int(result.State),
			StateText: result.State.String(),
			Summary:   result.Summary,
			Metrics:   metrics,
		})
	}

	return true
}
