package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/harrisonrobin/dayblock/pkg/colors"
	"github.com/harrisonrobin/dayblock/pkg/export"
	"github.com/harrisonrobin/dayblock/pkg/model"
	"github.com/harrisonrobin/dayblock/pkg/orgmode"
	"github.com/harrisonrobin/dayblock/pkg/overdue"
	"github.com/harrisonrobin/dayblock/pkg/planner"
	"github.com/harrisonrobin/dayblock/pkg/taskwarrior"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type generateOptions struct {
	file        string
	org         []string
	orgTag      string
	taskwarrior string
	start       string
	mode        string
}

func newGenerateCmd(a *app) *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   "generate [task...]",
		Short: "Build today's schedule from a task list",
		Long: `Builds today's schedule, one block per task, replacing any earlier schedule.

Tasks come from the arguments, --file, --org, --taskwarrior, or one per line
on stdin. --start and --mode are saved as your settings before generating,
once there is at least one task.`,
		Example: `  printf 'Finish deadline report\nClean desk\n' | dayblock generate
  dayblock generate --mode pomodoro --start 07:30 "Write proposal" "Call the bank"
  dayblock generate --taskwarrior "+work due:today"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.planner.CurrentUser(ctx); err != nil {
				return err
			}

			raw, err := readTasks(cmd, args, opts)
			if err != nil {
				return err
			}
			if strings.TrimSpace(raw) == "" {
				return planner.ErrEmptyInput
			}

			var patch planner.SettingsPatch
			if cmd.Flags().Changed("start") {
				patch.PreferredStartTime = &opts.start
			}
			if cmd.Flags().Changed("mode") {
				mode, err := model.ParseFocusMode(opts.mode)
				if err != nil {
					return fmt.Errorf("%w: %v", planner.ErrInvalidSettings, err)
				}
				patch.FocusMode = &mode
			}
			if patch.PreferredStartTime != nil || patch.FocusMode != nil {
				if _, err := a.planner.UpdateSettings(ctx, patch); err != nil {
					return err
				}
			}

			s, err := a.planner.Generate(ctx, raw)
			if err != nil {
				return err
			}
			printSchedule(cmd.OutOrStdout(), s, nil)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read tasks from a file, one per line")
	cmd.Flags().StringSliceVar(&opts.org, "org", nil, "read TODO headlines from org files")
	cmd.Flags().StringVar(&opts.orgTag, "org-tag", "", "only org headlines with this tag")
	cmd.Flags().StringVar(&opts.taskwarrior, "taskwarrior", "", "read pending tasks matching a Taskwarrior filter")
	cmd.Flags().StringVar(&opts.start, "start", "", "preferred start time, HH:MM")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "focus mode: normal or pomodoro")
	cmd.MarkFlagsMutuallyExclusive("file", "org", "taskwarrior")
	return cmd
}

// readTasks resolves the raw task text from whichever source was chosen.
func readTasks(cmd *cobra.Command, args []string, opts generateOptions) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, "\n"), nil
	case opts.file != "":
		b, err := os.ReadFile(opts.file)
		if err != nil {
			return "", fmt.Errorf("failed to read task file: %w", err)
		}
		return string(b), nil
	case len(opts.org) > 0:
		items, err := orgmode.ParseFiles(opts.org)
		if err != nil {
			return "", err
		}
		return orgmode.Titles(orgmode.FilterTasks(items, opts.orgTag)), nil
	case opts.taskwarrior != "":
		tasks, err := taskwarrior.NewClient().GetTasks(strings.Fields(opts.taskwarrior))
		if err != nil {
			return "", err
		}
		return taskwarrior.Titles(tasks, time.Now()), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read tasks from stdin: %w", err)
	}
	return string(b), nil
}

func printSchedule(w io.Writer, s *model.Schedule, done map[string]bool) {
	fmt.Fprintf(w, "Schedule for %s\n\n", s.Date)
	for _, t := range s.Tasks {
		mark := " "
		if done[t.ID] {
			mark = "✓"
		}
		fmt.Fprintf(w, "%s %s-%s  %s  %s  (%s)\n", mark, t.TimeStart, t.TimeEnd,
			colors.Style(t.Priority).Render(fmt.Sprintf("%-6s", t.Priority)), t.Title, t.ID)
	}
	if s.Quote != "" {
		fmt.Fprintf(w, "\n%s\n", colors.Muted.Render(s.Quote))
	}
}

// today returns today's schedule or planner.ErrNoSchedule.
func (a *app) today(cmd *cobra.Command) (*model.Schedule, error) {
	s, err := a.planner.Today(cmd.Context())
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, planner.ErrNoSchedule
	}
	return s, nil
}

func newShowCmd(a *app) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print today's schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.today(cmd)
			if err != nil {
				return err
			}
			done, err := a.planner.Completed(ctx)
			if err != nil {
				return err
			}
			u, err := a.planner.CurrentUser(ctx)
			if err != nil && !errors.Is(err, planner.ErrSignedOut) {
				return err
			}

			var buf bytes.Buffer
			if err := (export.Markdown{}).Export(&buf, s, u, done); err != nil {
				return err
			}
			if raw {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}

			renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
			if err != nil {
				return fmt.Errorf("failed to create markdown renderer: %w", err)
			}
			out, err := renderer.Render(buf.String())
			if err != nil {
				a.log.Warn("markdown render failed, printing raw", zap.Error(err))
				out = buf.String()
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	return cmd
}

func newQuoteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Draw a new motivational quote",
		Long:  "Draws a new quote. When today's schedule exists it gets the new quote; its tasks are untouched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := a.planner.RefreshQuote(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), q)
			return nil
		},
	}
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <task-id>",
		Short: "Toggle a task between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.today(cmd)
			if err != nil {
				return err
			}
			task, ok := s.Find(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", errUnknownTask, args[0])
			}
			done, err := a.planner.ToggleCompletion(cmd.Context(), task.ID)
			if err != nil {
				return err
			}
			state := "not done"
			if done {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", task.Title, state)
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show progress, the current block and overdue blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.today(cmd)
			if err != nil {
				return err
			}
			done, err := a.planner.Completed(cmd.Context())
			if err != nil {
				return err
			}
			now := time.Now()
			late, err := overdue.Sweep(s, done, now)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			completed := 0
			for _, t := range s.Tasks {
				if done[t.ID] {
					completed++
				}
			}
			fmt.Fprintf(w, "%d of %d tasks done\n", completed, len(s.Tasks))
			if current, ok := overdue.Current(s, now); ok {
				fmt.Fprintf(w, "Now: %s (until %s)\n", current.Title, current.TimeEnd)
			}
			if len(late) > 0 {
				fmt.Fprintln(w, "Overdue:")
				for _, e := range late {
					fmt.Fprintf(w, "  %s  ended %s, %s ago\n", e.Task.Title, e.Task.TimeEnd, e.Late.Round(time.Minute))
				}
			}
			return nil
		},
	}
}
