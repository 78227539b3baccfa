package exporter

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reolink-cli/pkg/models"
)

type fakeCamera struct {
	perf     []models.Response
	info     []models.Response
	err      error
	perfHits int
}

func (f *fakeCamera) GetPerformance() ([]models.Response, error) {
	f.perfHits++
	return f.perf, f.err
}

func (f *fakeCamera) GetInformation() ([]models.Response, error) {
	return f.info, f.err
}

func value(t *testing.T, cmd string, v any) []models.Response {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return []models.Response{{Cmd: cmd, Value: raw}}
}

func healthyCamera(t *testing.T) *fakeCamera {
	return &fakeCamera{
		perf: value(t, "GetPerformance", models.PerformanceValue{
			Performance: models.Performance{CodecRate: 2154, CPUUsed: 14, NetThroughput: 120},
		}),
		info: value(t, "GetDevInfo", models.DevInfoValue{
			DevInfo: models.DevInfo{Model: "RLC-410", FirmVer: "v2.0.0", Serial: "00000001", Name: "Front"},
		}),
	}
}

func TestCollect(t *testing.T) {
	var snaps []Snapshot
	c := New(healthyCamera(t), nil)
	c.OnScrape = func(s Snapshot) { snaps = append(snaps, s) }

	expected := `
# HELP reolink_cpu_used_percent CPU usage reported by the camera.
# TYPE reolink_cpu_used_percent gauge
reolink_cpu_used_percent 14
# HELP reolink_codec_rate_kbps Encoder output rate.
# TYPE reolink_codec_rate_kbps gauge
reolink_codec_rate_kbps 2154
# HELP reolink_net_throughput_kbps Network throughput.
# TYPE reolink_net_throughput_kbps gauge
reolink_net_throughput_kbps 120
# HELP reolink_device_info Device metadata, always 1.
# TYPE reolink_device_info gauge
reolink_device_info{firmware="v2.0.0",model="RLC-410",name="Front",serial="00000001"} 1
# HELP reolink_up Was the last scrape successful.
# TYPE reolink_up gauge
reolink_up 1
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"reolink_cpu_used_percent", "reolink_codec_rate_kbps", "reolink_net_throughput_kbps",
		"reolink_device_info", "reolink_up")
	require.NoError(t, err)

	require.Len(t, snaps, 1)
	assert.Equal(t, "00000001", snaps[0].Info.Serial)
	assert.Equal(t, 14, snaps[0].Performance.CPUUsed)
}

func TestCollectFailure(t *testing.T) {
	c := New(&fakeCamera{err: errors.New("connection refused")}, nil)

	expected := `
# HELP reolink_up Was the last scrape successful.
# TYPE reolink_up gauge
reolink_up 0
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "reolink_up"))
	// up and scrape duration only
	assert.Equal(t, 2, testutil.CollectAndCount(c))
}

func TestCollectRelogin(t *testing.T) {
	cam := healthyCamera(t)
	good := cam.perf
	cam.perf = []models.Response{{
		Cmd: "GetPerformance", Code: 1,
		Error: &models.ResponseError{RspCode: models.RspCodeLoginRequired, Detail: "please login first"},
	}}

	logins := 0
	c := New(cam, func() error {
		logins++
		cam.perf = good
		return nil
	})

	expected := `
# HELP reolink_cpu_used_percent CPU usage reported by the camera.
# TYPE reolink_cpu_used_percent gauge
reolink_cpu_used_percent 14
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "reolink_cpu_used_percent"))
	assert.Equal(t, 1, logins)
	assert.Equal(t, 2, cam.perfHits)
}
