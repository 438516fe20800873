package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/charlie0129/ftracker/pkg/tracker"
)

var remote = false

func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run [TYPE:params...]",
		Short:   "Print training info for sensor packages",
		GroupID: gBasic,
		Long: `Print one line of training info for every sensor package, in order.

Packages are taken from the arguments, or from the "packages" list of the
config file when no arguments are given.`,
		Example: `  ftracker run SWM:720,1,80,25,40 RUN:15000,1,75 WLK:9000,1,75,180`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}

			packages := conf.Packages()
			if len(args) > 0 {
				packages, err = parsePackageArgs(args)
				if err != nil {
					return err
				}
			}

			if remote {
				report, err := newAPIClient().Report(packages)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), report)
				return err
			}

			return newRunner(cmd.OutOrStdout(), conf).Run(packages)
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "compute through the ftracker daemon")

	return cmd
}

func NewDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "demo",
		Short:   "Print training info for the reference packages",
		GroupID: gBasic,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}
			return newRunner(cmd.OutOrStdout(), conf).Run(tracker.DemoPackages)
		},
	}
}
