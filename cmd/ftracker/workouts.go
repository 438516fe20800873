package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/charlie0129/ftracker/pkg/training"
	"github.com/charlie0129/ftracker/pkg/types"
)

var workoutsRemote = false

func NewWorkoutsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workouts",
		Short:   "List supported training types",
		GroupID: gBasic,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if workoutsRemote {
				kinds, err := newAPIClient().GetWorkouts()
				if err != nil {
					return err
				}
				printWorkouts(cmd.OutOrStdout(), kinds)
				return nil
			}

			kinds := make([]types.WorkoutKind, 0, len(training.Kinds()))
			for _, k := range training.Kinds() {
				kinds = append(kinds, types.WorkoutKind{Code: string(k.Code), Name: k.Name, Params: k.Params})
			}
			printWorkouts(cmd.OutOrStdout(), kinds)
			return nil
		},
	}

	cmd.Flags().BoolVar(&workoutsRemote, "remote", false, "list the training types supported by the ftracker daemon")

	return cmd
}

func printWorkouts(out io.Writer, kinds []types.WorkoutKind) {
	fmt.Fprintln(out, bold("Supported training types:"))
	for _, k := range kinds {
		fmt.Fprintf(out, "  %s  %-14s %s\n", bold("%s", k.Code), k.Name, strings.Join(k.Params, ", "))
	}
}
