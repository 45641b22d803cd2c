package main

import (
	"fmt"
	"os"
	"time"

	"github.com/harrisonrobin/dayblock/pkg/auth"
	"github.com/harrisonrobin/dayblock/pkg/export"
	"github.com/harrisonrobin/dayblock/pkg/google"
	"github.com/harrisonrobin/dayblock/pkg/index"
	"github.com/harrisonrobin/dayblock/pkg/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const formatGCal = "gcal"

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export today's schedule",
		Long: `Writes today's schedule as markdown, json or yaml to stdout or a file,
or with --format gcal creates one Google Calendar event per block.
Re-exporting updates the events created earlier instead of duplicating them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := a.planner.CurrentUser(ctx)
			if err != nil {
				return err
			}
			s, err := a.today(cmd)
			if err != nil {
				return err
			}
			done, err := a.planner.Completed(ctx)
			if err != nil {
				return err
			}

			if format == formatGCal {
				return a.exportCalendar(cmd, s, done)
			}

			exp, err := export.ForFormat(format)
			if err != nil {
				return err
			}
			if output == "" {
				return exp.Export(cmd.OutOrStdout(), s, u, done)
			}
			if err := writeExport(output, exp, s, u, done); err != nil {
				return err
			}
			a.log.Info("schedule exported", zap.String("format", format), zap.String("path", output))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "markdown", "markdown, json, yaml or gcal")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

func writeExport(path string, exp export.Exporter, s *model.Schedule, u *model.User, done map[string]bool) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := exp.Export(f, s, u, done); err != nil {
		f.Close()
		return fmt.Errorf("failed to export schedule: %w", err)
	}
	return f.Close()
}

func (a *app) exportCalendar(cmd *cobra.Command, s *model.Schedule, done map[string]bool) error {
	idx, err := index.NewEventIndex(a.cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load event index: %w", err)
	}
	client, err := google.NewClient(cmd.Context(), a.cfg.DataDir, a.cfg.Calendar, idx, a.log)
	if err != nil {
		return fmt.Errorf("error creating Google Calendar client: %w", err)
	}

	res, syncErr := client.SyncSchedule(s, done, time.Local)
	// Mappings for events created before a failure still need saving.
	if err := idx.Save(); err != nil {
		a.log.Warn("failed to save event index", zap.Error(err))
	}
	if syncErr != nil {
		return syncErr
	}

	a.log.Info("schedule synced to calendar",
		zap.String("calendar", a.cfg.Calendar),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("removed", res.Removed))
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d created, %d updated, %d unchanged, %d removed\n",
		a.cfg.Calendar, res.Created, res.Updated, res.Unchanged, res.Removed)
	return nil
}

func newAuthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize dayblock to write to Google Calendar",
		Long: fmt.Sprintf(`Runs the Google OAuth flow and caches the token.
Place the credentials.json from the Google Cloud Console in the data
directory first; the token is written next to it as %s.`, auth.TokenFile),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := auth.Reauthorize(cmd.Context(), a.cfg.DataDir); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Authentication successful! Token saved to %s\n", auth.TokenPath(a.cfg.DataDir))
			return nil
		},
	}
}
