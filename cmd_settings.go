package main

import (
	"fmt"
	"io"

	"github.com/harrisonrobin/dayblock/pkg/config"
	"github.com/harrisonrobin/dayblock/pkg/model"
	"github.com/harrisonrobin/dayblock/pkg/planner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSettingsCmd(a *app) *cobra.Command {
	var (
		start     string
		mode      string
		reminders bool
	)
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change your scheduling preferences",
		Long: `Without flags, prints the current settings. With flags, changes only
the given fields; invalid values are rejected and nothing is saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var patch planner.SettingsPatch
			changed := false
			if cmd.Flags().Changed("start") {
				patch.PreferredStartTime = &start
				changed = true
			}
			if cmd.Flags().Changed("mode") {
				m, err := model.ParseFocusMode(mode)
				if err != nil {
					return fmt.Errorf("%w: %v", planner.ErrInvalidSettings, err)
				}
				patch.FocusMode = &m
				changed = true
			}
			if cmd.Flags().Changed("email-reminders") {
				patch.EmailReminders = &reminders
				changed = true
			}

			var s model.Settings
			var err error
			if changed {
				s, err = a.planner.UpdateSettings(ctx, patch)
			} else {
				s, err = a.planner.Settings(ctx)
			}
			if err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), s)
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "preferred start time, HH:MM")
	cmd.Flags().StringVar(&mode, "mode", "", "focus mode: normal or pomodoro")
	cmd.Flags().BoolVar(&reminders, "email-reminders", false, "email reminders on or off")
	return cmd
}

func printSettings(w io.Writer, s model.Settings) {
	reminders := "off"
	if s.EmailReminders {
		reminders = "on"
	}
	fmt.Fprintf(w, "Start time:      %s\n", s.PreferredStartTime)
	fmt.Fprintf(w, "Focus mode:      %s\n", s.FocusMode)
	fmt.Fprintf(w, "Email reminders: %s\n", reminders)
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage application configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set-calendar NAME",
		Short: "Set the Google Calendar used by 'export --format gcal'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.cfg.Calendar = args[0]
			if err := config.SaveTo(a.configDir, a.cfg); err != nil {
				return fmt.Errorf("error saving config: %w", err)
			}
			a.log.Info("default calendar changed", zap.String("calendar", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "Default calendar set to: %s\n", args[0])
			return nil
		},
	})
	return cmd
}
