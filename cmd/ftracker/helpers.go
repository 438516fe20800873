package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/ftracker/pkg/client"
	"github.com/charlie0129/ftracker/pkg/config"
	"github.com/charlie0129/ftracker/pkg/tracker"
)

func parseFloatArgs(args []string) ([]float64, error) {
	values := make([]float64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "invalid param %q", arg)
		}
		values = append(values, v)
	}
	return values, nil
}

func parsePackageArgs(args []string) ([]tracker.Package, error) {
	packages := make([]tracker.Package, 0, len(args))
	for _, arg := range args {
		p, err := tracker.ParsePackage(arg)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, nil
}

func loadConfig() (*config.File, error) {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(conf.LogrusFields()).Debug("config loaded")
	return conf, nil
}

func newRunner(out io.Writer, conf config.Config) *tracker.Runner {
	return tracker.NewRunner(out, tracker.WithColor(conf.ColorOutput() && !color.NoColor))
}

// newAPIClient dials the daemon over TCP when --daemon-address is set and
// over its unix socket otherwise.
func newAPIClient() *client.Client {
	if addr := strings.TrimSpace(daemonAddress); addr != "" {
		if !strings.Contains(addr, "://") {
			addr = "http://" + addr
		}
		return client.NewTCPClient(addr)
	}
	return client.NewClient(unixSocketPath)
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
