package config

import (
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/ftracker/pkg/tracker"
)

type Config interface {
	// Packages are the sensor readings processed by "ftracker run" when none
	// are given on the command line.
	Packages() []tracker.Package
	ColorOutput() bool
	// ListenAddress is a TCP address for the daemon. When empty the daemon
	// listens on its unix socket.
	ListenAddress() string
	MetricsEnabled() bool

	SetPackages([]tracker.Package)
	SetColorOutput(bool)
	SetListenAddress(string)
	SetMetricsEnabled(bool)

	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
