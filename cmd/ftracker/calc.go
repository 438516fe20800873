package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/ftracker/pkg/client"
	"github.com/charlie0129/ftracker/pkg/tracker"
)

var calcRemote = false

func NewCalcCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "calc TYPE [params...]",
		Short:   "Print training info for a single package",
		GroupID: gBasic,
		Example: `  ftracker calc RUN 15000 1 75
  ftracker calc --remote SWM 720 1 80 25 40`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseFloatArgs(args[1:])
			if err != nil {
				return err
			}
			p := tracker.Package{Type: args[0], Params: params}

			if !calcRemote {
				conf, err := loadConfig()
				if err != nil {
					return err
				}
				return newRunner(cmd.OutOrStdout(), conf).Run([]tracker.Package{p})
			}

			resp, err := newAPIClient().Summary(p)
			if err != nil {
				var respErr *client.ResponseError
				if !errors.As(err, &respErr) {
					return err
				}
				logrus.WithField("status", respErr.StatusCode).Debug("daemon rejected package")
				_, err = fmt.Fprintln(cmd.OutOrStdout(), color.RedString("%s", respErr.Message()))
				return err
			}

			logrus.WithField("requestID", resp.RequestID).Debug("summary computed by daemon")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
			return err
		},
	}

	cmd.Flags().BoolVar(&calcRemote, "remote", false, "compute through the ftracker daemon")

	return cmd
}
