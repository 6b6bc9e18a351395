package db

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2api "github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/fortimon/fortimon/common"
	"github.com/fortimon/fortimon/util"
)

// InfluxDBBucket - InfluxDB bucket.
const InfluxDBBucket = "fortimon"

var client *influxdb2.Client = nil
var clientWriteAPI *influxdb2api.WriteAPI

// StartClient - Start DB client.
func StartClient(waitGroup *sync.WaitGroup, shutdown *util.ShutdownChannelDistributor) {
	// Setup shutdown signal and waitgroup
	shutdownChannel := make(chan bool, 1)
	if !shutdown.AddListener(shutdownChannel) {
		return
	}
	waitGroup.Add(1)

	newClient := influxdb2.NewClient(common.GlobalConfig.InfluxDBURL, common.GlobalConfig.InfluxDBToken)
	client = &newClient

	cleanup := func() {
		if clientWriteAPI != nil {
			localWriteAPI := *clientWriteAPI
			clientWriteAPI = nil
			localWriteAPI.Flush()
		}
		localClient := *client
		client = nil
		localClient.Close()
		log.Info("DB client stopped")
		waitGroup.Done()
	}

	// Wait for DB connection (true) to come up or for shutdown signal (false)
	if !waitForDBUp(shutdownChannel) {
		cleanup()
		return
	}

	// Setup async write API and error logging
	writeAPI := (*client).WriteAPI(common.GlobalConfig.InfluxDBOrg, InfluxDBBucket)
	clientWriteAPI = &writeAPI
	writeAPIErrors := writeAPI.Errors()
	go func() {
		for err := range writeAPIErrors {
			log.WithError(err).Error("Failed to write to database")
		}
	}()

	go func() {
		<-shutdownChannel
		cleanup()
	}()

	log.Info("DB client started: ", common.GlobalConfig.InfluxDBURL)
}

func waitForDBUp(shutdownChannel <-chan bool) bool {
	checkHealth := func() bool {
		_, err := (*client).Health(context.Background())
		if err != nil {
			log.WithError(err).Tracef("Database connection error")
			return false
		}
		return true
	}
	if checkHealth() {
		return true
	}
	log.Info("Waiting for database")
	for {
		select {
		case <-time.Tick(1 * time.Second):
			if checkHealth() {
				return true
			}
		case <-shutdownChannel:
			return false
		}
	}
}

// StoreScrapeEntry - Attempt to store a scrape entry in the DB.
func StoreScrapeEntry(entry common.ScrapeEntry) {
	log.WithFields(log.Fields{
		"source":   entry.Source,
		"time":     entry.Time,
		"duration": entry.Duration,
		"success":  entry.Success,
	}).Trace("Scrape entry")

	if clientWriteAPI == nil {
		return
	}

	point := influxdb2.NewPointWithMeasurement("scrape").
		AddTag("source", entry.Source).
		AddField("duration_seconds", float64(entry.Duration)/float64(time.Second)).
		AddField("success", entry.Success).
		SetTime(entry.Time)
	(*clientWriteAPI).WritePoint(point)
}

// StoreSourceDeviceEntry - Attempt to store a source device entry in the DB.
func StoreSourceDeviceEntry(entry common.SourceDeviceEntry) {
	log.WithFields(log.Fields{
		"source":   entry.Source,
		"vendor":   entry.Vendor,
		"software": entry.Software,
		"other":    entry.Other,
	}).Trace("Source device entry")

	if clientWriteAPI == nil {
		return
	}

	point := influxdb2.NewPointWithMeasurement("source_device").
		AddTag("source", entry.Source).
		AddField("vendor", entry.Vendor).
		AddField("software", entry.Software).
		AddField("other", entry.Other).
		SetTime(entry.Time)
	(*clientWriteAPI).WritePoint(point)
}

// StoreTunnelCheckEntry - Attempt to store a tunnel check entry in the DB.
func StoreTunnelCheckEntry(entry common.TunnelCheckEntry) {
	log.WithFields(log.Fields{
		"source":  entry.Source,
		"tunnel":  entry.Tunnel,
		"state":   entry.StateText,
		"summary": entry.Summary,
	}).Trace("Tunnel check entry")

	if clientWriteAPI == nil {
		return
	}

	point := influxdb2.NewPointWithMeasurement("tunnel").
		AddTag("source", entry.Source).
		AddTag("tunnel", entry.Tunnel).
		AddField("state", entry.State).
		AddField("state_text", entry.StateText).
		AddField("summary", entry.Summary).
		SetTime(entry.Time)
	for name, value := range entry.Metrics {
		point.AddField(name, value)
	}
	(*clientWriteAPI).WritePoint(point)
}
