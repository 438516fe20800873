package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/ftracker/pkg/tracker"
	"github.com/charlie0129/ftracker/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		Packages:       nil,
		ColorOutput:    ptr.To(true),
		ListenAddress:  ptr.To(""),
		MetricsEnabled: ptr.To(true),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	Packages       []tracker.Package `json:"packages,omitempty"`
	ColorOutput    *bool             `json:"colorOutput,omitempty"`
	ListenAddress  *string           `json:"listenAddress,omitempty"`
	MetricsEnabled *bool             `json:"metricsEnabled,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		Packages:       c.Packages(),
		ColorOutput:    ptr.To(c.ColorOutput()),
		ListenAddress:  ptr.To(c.ListenAddress()),
		MetricsEnabled: ptr.To(c.MetricsEnabled()),
	}

	return rawConfig, nil
}

func (f *File) Packages() []tracker.Package {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		panic("config is nil")
	}

	packages := make([]tracker.Package, len(f.c.Packages))
	copy(packages, f.c.Packages)

	return packages
}

func (f *File) ColorOutput() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		panic("config is nil")
	}

	if f.c.ColorOutput != nil {
		return *f.c.ColorOutput
	}
	return *defaultFileConfig.ColorOutput
}

func (f *File) ListenAddress() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		panic("config is nil")
	}

	if f.c.ListenAddress != nil {
		return strings.TrimSpace(*f.c.ListenAddress)
	}
	return *defaultFileConfig.ListenAddress
}

func (f *File) MetricsEnabled() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		panic("config is nil")
	}

	if f.c.MetricsEnabled != nil {
		return *f.c.MetricsEnabled
	}
	return *defaultFileConfig.MetricsEnabled
}

func (f *File) SetPackages(packages []tracker.Package) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.c == nil {
		panic("config is nil")
	}
	f.c.Packages = packages
}

func (f *File) SetColorOutput(b bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.c == nil {
		panic("config is nil")
	}
	f.c.ColorOutput = &b
}

func (f *File) SetListenAddress(addr string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.c == nil {
		panic("config is nil")
	}
	f.c.ListenAddress = &addr
}

func (f *File) SetMetricsEnabled(b bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.c == nil {
		panic("config is nil")
	}
	f.c.MetricsEnabled = &b
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing file means defaults. Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// json.Decoder cannot tell an empty file from a broken one.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"packages":       len(f.Packages()),
		"colorOutput":    f.ColorOutput(),
		"listenAddress":  f.ListenAddress(),
		"metricsEnabled": f.MetricsEnabled(),
	}
}
