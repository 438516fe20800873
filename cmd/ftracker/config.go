package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/ftracker/pkg/config"
	"github.com/charlie0129/ftracker/pkg/utils/ptr"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show or change the ftracker daemon config",
		GroupID: gAdvanced,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the config the daemon is running with",
			RunE: func(cmd *cobra.Command, _ []string) error {
				conf, err := newAPIClient().GetConfig()
				if err != nil {
					return err
				}
				return printConfig(cmd.OutOrStdout(), conf)
			},
		},
		newConfigSetCommand(),
	)

	return cmd
}

func newConfigSetCommand() *cobra.Command {
	var (
		packages       []string
		colorOutput    bool
		listenAddress  string
		metricsEnabled bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change daemon config fields and save them to the config file",
		Long: `Change daemon config fields and save them to the config file.

Only the flags given on the command line are changed. A new listen address
takes effect the next time the daemon starts.`,
		Example: `  ftracker config set --package RUN:15000,1,75 --package WLK:9000,1,75,180
  ftracker config set --metrics-enabled=false`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := &config.RawFileConfig{}
			f := cmd.Flags()

			if f.Changed("package") {
				parsed, err := parsePackageArgs(packages)
				if err != nil {
					return err
				}
				req.Packages = parsed
			}
			if f.Changed("color-output") {
				req.ColorOutput = ptr.To(colorOutput)
			}
			if f.Changed("listen-address") {
				req.ListenAddress = ptr.To(listenAddress)
			}
			if f.Changed("metrics-enabled") {
				req.MetricsEnabled = ptr.To(metricsEnabled)
			}

			conf, err := newAPIClient().SetConfig(req)
			if err != nil {
				return err
			}
			logrus.Info("successfully updated config")

			return printConfig(cmd.OutOrStdout(), conf)
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&packages, "package", nil, "sensor package TYPE:p1,p2,... run when 'ftracker run' gets no arguments (repeatable, replaces the list)")
	f.BoolVar(&colorOutput, "color-output", true, "highlight error lines in red")
	f.StringVar(&listenAddress, "listen-address", "", "TCP address for the daemon, empty for the unix socket")
	f.BoolVar(&metricsEnabled, "metrics-enabled", true, "serve Prometheus metrics on /metrics")

	return cmd
}

func printConfig(out io.Writer, conf *config.RawFileConfig) error {
	b, err := json.MarshalIndent(conf, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}
