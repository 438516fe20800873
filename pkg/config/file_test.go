package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/ftracker/pkg/tracker"
)

func TestNewFileMissingOrEmpty(t *testing.T) {
	dir := t.TempDir()

	missing, err := NewFile(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, missing.Packages())
	assert.True(t, missing.ColorOutput())
	assert.True(t, missing.MetricsEnabled())
	assert.Equal(t, "", missing.ListenAddress())

	emptyPath := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(emptyPath, []byte("  \n"), 0644))
	empty, err := NewFile(emptyPath)
	require.NoError(t, err)
	assert.Empty(t, empty.Packages())
}

func TestNewFileParsesPackages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ftracker.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "packages": [
    {"type": "SWM", "params": [720, 1, 80, 25, 40]},
    {"type": "RUN", "params": [15000, 1, 75]}
  ],
  "colorOutput": false,
  "listenAddress": " 127.0.0.1:8080 "
}`), 0644))

	f, err := NewFile(path)
	require.NoError(t, err)
	assert.Equal(t, []tracker.Package{
		{Type: "SWM", Params: []float64{720, 1, 80, 25, 40}},
		{Type: "RUN", Params: []float64{15000, 1, 75}},
	}, f.Packages())
	assert.False(t, f.ColorOutput())
	assert.Equal(t, "127.0.0.1:8080", f.ListenAddress())
	assert.True(t, f.MetricsEnabled())
}

func TestNewFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ftracker.json")
	require.NoError(t, os.WriteFile(path, []byte("{packages"), 0644))

	_, err := NewFile(path)
	assert.ErrorContains(t, err, "failed to unmarshal config")
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ftracker.json")
	f := NewFileFromConfig(nil, path)
	f.SetPackages(tracker.DemoPackages)
	f.SetColorOutput(false)
	f.SetMetricsEnabled(false)
	f.SetListenAddress(":9090")
	require.NoError(t, f.Save())

	reloaded, err := NewFile(path)
	require.NoError(t, err)
	assert.Equal(t, tracker.DemoPackages, reloaded.Packages())
	assert.False(t, reloaded.ColorOutput())
	assert.False(t, reloaded.MetricsEnabled())
	assert.Equal(t, ":9090", reloaded.ListenAddress())

	raw, err := NewRawFileConfigFromConfig(reloaded)
	require.NoError(t, err)
	assert.Len(t, raw.Packages, 3)
	assert.Equal(t, 3, reloaded.LogrusFields()["packages"])
}

func TestReloadWhileReading(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ftracker.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"colorOutput": false}`), 0644))

	f, err := NewFile(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			assert.NoError(t, f.Load())
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			assert.False(t, f.ColorOutput())
			_ = f.LogrusFields()
		}
	}()
	wg.Wait()
}
