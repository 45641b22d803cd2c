package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/harrisonrobin/dayblock/pkg/index"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newResetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete your profile, schedule, settings and progress",
		Long: `Deletes every record dayblock stores and forgets which calendar events
were exported. Events already in Google Calendar are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprint(cmd.OutOrStdout(), "This deletes all dayblock data. Continue? [y/N] ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			if err := a.planner.Reset(cmd.Context()); err != nil {
				return err
			}

			idx, err := index.NewEventIndex(a.cfg.DataDir)
			if err != nil {
				a.log.Warn("could not load event index", zap.Error(err))
			} else {
				idx.Clear()
				if err := idx.Save(); err != nil {
					a.log.Warn("could not clear event index", zap.Error(err))
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), "All data cleared.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
