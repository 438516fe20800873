package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/ftracker/pkg/config"
	"github.com/charlie0129/ftracker/pkg/tracker"
	"github.com/charlie0129/ftracker/pkg/types"
	"github.com/charlie0129/ftracker/pkg/utils/ptr"
	"github.com/charlie0129/ftracker/pkg/version"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	if !containsFlag(args, "--config") {
		args = append(args, "--config", filepath.Join(t.TempDir(), "missing.json"))
	}
	cmd.SetArgs(append(args, "--no-color"))

	err := cmd.Execute()
	return out.String(), err
}

func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func TestDemoCommand(t *testing.T) {
	out, err := execute(t, "demo")
	require.NoError(t, err)

	got := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, got, 3)
	assert.Contains(t, got[0], "Дистанция: 0.994 км")
	assert.Contains(t, got[1], "Потрачено ккал: 699.750.")
	assert.Contains(t, got[2], "Потрачено ккал: 157.500.")
}

func TestRunCommandArgs(t *testing.T) {
	out, err := execute(t, "run", "RUN:15000,1,75", "XYZ:1,2,3", "SWM:720,0,80,25,40")
	require.NoError(t, err)
	assert.Equal(t,
		"Тип тренировки: Running; Длительность: 1.000 ч.; Дистанция: 9.750 км; Ср. скорость: 9.750 км/ч; Потрачено ккал: 699.750.\n"+
			tracker.MsgInvalidParams+"\n"+
			tracker.MsgSensorFault+"\n",
		out)
}

func TestRunCommandNoPackages(t *testing.T) {
	out, err := execute(t, "run")
	require.NoError(t, err)
	assert.Equal(t, tracker.MsgNoPackages+"\n", out)
}

func TestRunCommandConfigPackages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ftracker.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"packages":[{"type":"WLK","params":[9000,1,75,180]}]}`), 0644))

	out, err := execute(t, "run", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "Тип тренировки: SportsWalking; Длительность: 1.000 ч.; Дистанция: 5.850 км; Ср. скорость: 5.850 км/ч; Потрачено ккал: 157.500.\n", out)
}

func TestRunCommandBadArg(t *testing.T) {
	_, err := execute(t, "run", "RUN")
	assert.Error(t, err)
}

func TestCalcCommand(t *testing.T) {
	out, err := execute(t, "calc", "SWM", "720", "1", "80", "25", "40")
	require.NoError(t, err)
	assert.Equal(t, "Тип тренировки: Swimming; Длительность: 1.000 ч.; Дистанция: 0.994 км; Ср. скорость: 1.000 км/ч; Потрачено ккал: 336.000.\n", out)

	out, err = execute(t, "calc", "RUN", "15000", "1")
	require.NoError(t, err)
	assert.Equal(t, tracker.MsgInvalidParams+"\n", out)

	_, err = execute(t, "calc", "RUN", "many")
	assert.Error(t, err)
}

func TestWorkoutsCommand(t *testing.T) {
	out, err := execute(t, "workouts")
	require.NoError(t, err)
	assert.Contains(t, out, "RUN")
	assert.Contains(t, out, "SportsWalking")
	assert.Contains(t, out, "length_pool, count_pool")
}

// newTCPDaemon serves the daemon routes used by the remote commands and
// returns its host:port.
func newTCPDaemon(t *testing.T) string {
	t.Helper()

	stored := config.RawFileConfig{ColorOutput: ptr.To(true), MetricsEnabled: ptr.To(true)}

	mux := http.NewServeMux()
	mux.HandleFunc("/workouts", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]types.WorkoutKind{{Code: "SWM", Name: "Swimming", Params: []string{"action", "duration"}}})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(version.Version)
	})
	mux.HandleFunc("/report", func(w http.ResponseWriter, r *http.Request) {
		var packages []tracker.Package
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&packages))
		assert.NoError(t, tracker.NewRunner(w).Run(packages))
	})
	mux.HandleFunc("/config", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			var req config.RawFileConfig
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Nil(t, req.ColorOutput)
			assert.Nil(t, req.ListenAddress)
			if req.Packages != nil {
				stored.Packages = req.Packages
			}
			if req.MetricsEnabled != nil {
				stored.MetricsEnabled = req.MetricsEnabled
			}
			w.WriteHeader(http.StatusCreated)
		}
		_ = json.NewEncoder(w).Encode(stored)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return strings.TrimPrefix(srv.URL, "http://")
}

func TestRemoteCommandsOverTCP(t *testing.T) {
	addr := newTCPDaemon(t)

	out, err := execute(t, "workouts", "--remote", "--daemon-address", addr)
	require.NoError(t, err)
	assert.Contains(t, out, "Swimming")
	assert.Contains(t, out, "action, duration")
	assert.NotContains(t, out, "RUN")

	out, err = execute(t, "version", "--daemon-address", "http://"+addr)
	require.NoError(t, err)
	assert.Contains(t, out, "daemon: "+version.Version)

	out, err = execute(t, "run", "--remote", "--daemon-address", addr, "RUN:15000,1,75", "RUN:15000,0,75")
	require.NoError(t, err)
	assert.Equal(t, "Тип тренировки: Running; Длительность: 1.000 ч.; Дистанция: 9.750 км; Ср. скорость: 9.750 км/ч; Потрачено ккал: 699.750.\n"+
		tracker.MsgSensorFault+"\n", out)
}

func TestConfigCommands(t *testing.T) {
	addr := newTCPDaemon(t)

	out, err := execute(t, "config", "set", "--daemon-address", addr,
		"--package", "RUN:15000,1,75", "--metrics-enabled=false")
	require.NoError(t, err)

	var conf config.RawFileConfig
	require.NoError(t, json.Unmarshal([]byte(out), &conf))
	assert.Equal(t, []tracker.Package{{Type: "RUN", Params: []float64{15000, 1, 75}}}, conf.Packages)
	require.NotNil(t, conf.MetricsEnabled)
	assert.False(t, *conf.MetricsEnabled)

	out, err = execute(t, "config", "show", "--daemon-address", addr)
	require.NoError(t, err)
	assert.Contains(t, out, `"metricsEnabled": false`)
}

func TestVersionWithoutDaemon(t *testing.T) {
	out, err := execute(t, "version", "--daemon-socket", filepath.Join(t.TempDir(), "ftracker.sock"))
	require.NoError(t, err)
	assert.Contains(t, out, "client: "+version.Version)
	assert.Contains(t, out, "daemon: unavailable")
}
