package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/fortimon/fortimon/common"
	"github.com/fortimon/fortimon/scraping"
	"github.com/fortimon/fortimon/util"
)

// StartServer - Start HTTP server in the background.
func StartServer(waitGroup *sync.WaitGroup, shutdown *util.ShutdownChannelDistributor) {
	shutdownChannel := make(chan bool, 1)
	if !shutdown.AddListener(shutdownChannel) {
		return
	}
	waitGroup.Add(1)

	// Configure
	var mainServeMux http.ServeMux
	mainServeMux.HandleFunc("/", handleOtherRequest)
	mainServeMux.HandleFunc("/metrics", handleMetricsRequest)
	server := &http.Server{
		Addr:    common.GlobalConfig.HTTPEndpoint,
		Handler: &mainServeMux,
	}

	// Run
	var shutdownContextCancel context.CancelFunc = nil
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("HTTP server failed")
		}
		// Cancel shutdown timer
		if shutdownContextCancel != nil {
			shutdownContextCancel()
		}
		log.Info("HTTP server stopped")
		waitGroup.Done()
	}()

	// Shutdown
	go func() {
		<-shutdownChannel
		var shutdownContext context.Context
		shutdownContext, shutdownContextCancel = context.WithTimeout(context.Background(), 5*time.Second)
		server.Shutdown(shutdownContext)
	}()

	log.Infof("HTTP server started: %v", common.GlobalConfig.HTTPEndpoint)
}

func handleOtherRequest(response http.ResponseWriter, request *http.Request) {
	if request.URL.Path == "/" {
		fmt.Fprintf(response, "%s version %s by %s.\n", common.AppName, common.AppVersion, common.AppAuthor)
		fmt.Fprintf(response, "\nPaths:\n")
		fmt.Fprintf(response, "- Metrics: /metrics\n")
	} else {
		message := fmt.Sprintf("404 - Page not found.\n")
		http.Error(response, message, 404)
	}
}

func handleMetricsRequest(response http.ResponseWriter, request *http.Request) {
	log.WithFields(log.Fields{
		"endpoint": "metrics",
		"client":   request.RemoteAddr,
		"url":      request.URL,
	}).Trace("Request")

	// Build registry with data
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	util.NewExporterMetric(registry, common.PrometheusNamespace, common.AppVersion)
	addTunnelMetrics(registry)

	// Delegate final handling to Prometheus
	promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP(response, request)
}

// addTunnelMetrics - Expose the latest check result per tracked tunnel.
func addTunnelMetrics(registry *prometheus.Registry) {
	tunnelLabels := []string{"source", "tunnel"}
	stateGauge := util.NewGaugeVec(registry, common.PrometheusNamespace, "tunnel", "state",
		"Check state of the tunnel (0=OK, 2=CRITICAL, 3=UNKNOWN).", tunnelLabels)
	counterGauges := make(map[string]*prometheus.GaugeVec)

	for _, status := range scraping.LatestTunnelStatuses() {
		labels := prometheus.Labels{
			"source": status.Source,
			"tunnel": status.Tunnel,
		}
		stateGauge.With(labels).Set(float64(status.Result.State))
		for _, metric := range status.Result.Metrics {
			gauge, found := counterGauges[metric.Name]
			if !found {
				gauge = util.NewGaugeVec(registry, common.PrometheusNamespace, "tunnel", metric.Name,
					"Cumulative tunnel byte counter as last polled from the device.", tunnelLabels)
				counterGauges[metric.Name] = gauge
			}
			gauge.With(labels).Set(float64(metric.Value))
		}
	}
}
