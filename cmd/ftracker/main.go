package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/charlie0129/ftracker/pkg/client"
)

var (
	logLevel       = "info"
	unixSocketPath = "/tmp/ftracker.sock"
	daemonAddress  = ""
	configPath     = "/etc/ftracker.json"
	noColor        = false
)

var (
	gBasic        = "Basic:"
	gAdvanced     = "Advanced:"
	commandGroups = []string{
		gBasic,
		gAdvanced,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to parse log level")
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	if noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	return nil
}

func handleCmdError(err error) {
	var respErr *client.ResponseError
	switch {
	case errors.Is(err, client.ErrDaemonNotRunning):
		fmt.Fprintln(os.Stderr, "\nError: ftracker daemon is not running")
		fmt.Fprintln(os.Stderr, "Start it with 'ftracker daemon' or drop the '--remote' flag.")
	case errors.Is(err, client.ErrPermissionDenied):
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or restart the daemon with the '--allow-non-root-access' flag")
	case errors.As(err, &respErr):
		fmt.Fprintf(os.Stderr, "\nError: daemon responded with %d\n", respErr.StatusCode)
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ftracker",
		Short: "ftracker computes workout statistics from fitness tracker sensor data",
		Long: `ftracker computes distance, mean speed and spent calories for running,
sports walking and swimming from raw fitness tracker sensor packages.

A package is written as TYPE:param1,param2,... where TYPE is one of RUN, WLK, SWM.
Run 'ftracker workouts' to see the parameters each type expects.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "ftracker daemon unix socket path")
	globalFlags.StringVar(&daemonAddress, "daemon-address", "", "ftracker daemon TCP address (host:port or URL), used instead of the unix socket when set")
	globalFlags.BoolVar(&noColor, "no-color", false, "disable colored output")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewRunCommand(),
		NewDemoCommand(),
		NewCalcCommand(),
		NewWorkoutsCommand(),
		NewConfigCommand(),
		NewDaemonCommand(),
		NewVersionCommand(),
	)

	return cmd
}
