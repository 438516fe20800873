package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/ftracker/pkg/daemon"
	"github.com/charlie0129/ftracker/pkg/version"
)

var (
	// allowNonRootAccess indicates whether to allow non-root users to access the ftracker daemon.
	allowNonRootAccess = false
)

// NewDaemonCommand runs the HTTP API in the foreground until interrupted.
func NewDaemonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "daemon",
		Short:   "Run ftracker daemon in the foreground",
		GroupID: gAdvanced,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version": version.Version,
				"commit":  version.GitCommit,
			}).Info("ftracker daemon starting")
			return daemon.Run(configPath, unixSocketPath, allowNonRootAccess)
		},
	}

	f := cmd.Flags()

	f.BoolVar(&allowNonRootAccess, "allow-non-root-access", false,
		"Allow non-root users to access the daemon socket.")

	return cmd
}

// NewVersionCommand prints the client version and, when the daemon can be
// reached, the daemon version.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client and daemon version",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "client: %s %s\n", version.Version, version.GitCommit)

			daemonVersion, err := newAPIClient().GetVersion()
			if err != nil {
				logrus.WithError(err).Debug("failed to get daemon version")
				fmt.Fprintln(out, "daemon: unavailable")
				return
			}
			fmt.Fprintf(out, "daemon: %s\n", daemonVersion)

			if daemonVersion != version.Version {
				logrus.WithFields(logrus.Fields{
					"clientVersion": version.Version,
					"daemonVersion": daemonVersion,
				}).Warn("version mismatch between client and daemon")
			}
		},
	}
}
