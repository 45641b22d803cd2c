package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harrisonrobin/dayblock/pkg/planner"
	"github.com/harrisonrobin/dayblock/pkg/tui"
	"github.com/spf13/cobra"
)

func newDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive view of today's schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := a.planner.CurrentUser(ctx)
			if err != nil {
				return err
			}
			s, err := a.today(cmd)
			if err != nil && !errors.Is(err, planner.ErrNoSchedule) {
				return err
			}
			done, err := a.planner.Completed(ctx)
			if err != nil {
				return err
			}

			m := tui.New(ctx, a.planner, u, s, done, a.log)
			p := tea.NewProgram(m,
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("dashboard run failed: %w", err)
			}
			return nil
		},
	}
}
