// Package exporter turns GetPerformance and GetDevInfo into Prometheus
// metrics.
package exporter

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"reolink-cli/internal/client"
	"reolink-cli/internal/system"
	"reolink-cli/pkg/models"
)

// Camera is the subset of system.API the collector needs.
type Camera interface {
	GetPerformance() ([]models.Response, error)
	GetInformation() ([]models.Response, error)
}

// Snapshot is what a scrape learned, handed to OnScrape.
type Snapshot struct {
	Info        models.DevInfo
	Performance models.Performance
}

var (
	upDesc = prometheus.NewDesc(
		"reolink_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"reolink_scrape_duration_seconds", "Time taken to scrape the camera API.", nil, nil,
	)
	deviceInfoDesc = prometheus.NewDesc(
		"reolink_device_info", "Device metadata, always 1.", []string{"model", "firmware", "serial", "name"}, nil,
	)
	cpuUsedDesc = prometheus.NewDesc(
		"reolink_cpu_used_percent", "CPU usage reported by the camera.", nil, nil,
	)
	codecRateDesc = prometheus.NewDesc(
		"reolink_codec_rate_kbps", "Encoder output rate.", nil, nil,
	)
	netThroughputDesc = prometheus.NewDesc(
		"reolink_net_throughput_kbps", "Network throughput.", nil, nil,
	)
)

type Collector struct {
	Camera Camera
	// Relogin renews the session after an auth error. May be nil.
	Relogin func() error
	// OnScrape is called after each successful performance read. May be nil.
	OnScrape func(Snapshot)

	mu sync.Mutex
}

func New(cam Camera, relogin func() error) *Collector {
	return &Collector{Camera: cam, Relogin: relogin}
}

// ForClient wires a collector to a logged-in HTTP client.
func ForClient(c *client.ReolinkClient) *Collector {
	return New(system.New(c), func() error {
		_, err := c.Login()
		return err
	})
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- deviceInfoDesc
	ch <- cpuUsedDesc
	ch <- codecRateDesc
	ch <- netThroughputDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	start := time.Now()
	success := 1.0

	var snap Snapshot

	var info models.DevInfoValue
	if err := c.fetch(c.Camera.GetInformation, &info); err == nil {
		snap.Info = info.DevInfo
		ch <- prometheus.MustNewConstMetric(deviceInfoDesc, prometheus.GaugeValue, 1,
			info.DevInfo.Model, info.DevInfo.FirmVer, info.DevInfo.Serial, info.DevInfo.Name)
	} else {
		success = 0.0
		logrus.WithError(err).Error("error scraping device info")
	}

	var perf models.PerformanceValue
	if err := c.fetch(c.Camera.GetPerformance, &perf); err == nil {
		snap.Performance = perf.Performance
		ch <- prometheus.MustNewConstMetric(cpuUsedDesc, prometheus.GaugeValue, float64(perf.Performance.CPUUsed))
		ch <- prometheus.MustNewConstMetric(codecRateDesc, prometheus.GaugeValue, float64(perf.Performance.CodecRate))
		ch <- prometheus.MustNewConstMetric(netThroughputDesc, prometheus.GaugeValue, float64(perf.Performance.NetThroughput))
		if c.OnScrape != nil {
			c.OnScrape(snap)
		}
	} else {
		success = 0.0
		logrus.WithError(err).Error("error scraping performance")
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

// fetch runs op and decodes its first value, logging in once more if the
// token has expired.
func (c *Collector) fetch(op func() ([]models.Response, error), v any) error {
	err := decode(op, v)
	if err == nil || c.Relogin == nil || !client.IsAuthError(err) {
		return err
	}
	if e := c.Relogin(); e != nil {
		logrus.WithError(e).Warn("relogin failed")
		return err
	}
	return decode(op, v)
}

func decode(op func() ([]models.Response, error), v any) error {
	resps, err := op()
	if err != nil {
		return err
	}
	return models.FirstValue(resps, v)
}
