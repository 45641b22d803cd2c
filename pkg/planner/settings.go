package planner

import (
	"context"
	"fmt"

	"github.com/harrisonrobin/dayblock/pkg/model"
	"go.uber.org/zap"
)

// SettingsPatch changes only the fields that are set.
type SettingsPatch struct {
	EmailReminders     *bool
	PreferredStartTime *string
	FocusMode          *model.FocusMode
}

func (p *Planner) Settings(ctx context.Context) (model.Settings, error) {
	s, err := p.repo.Settings(ctx)
	if err != nil {
		return s, fmt.Errorf("failed to load settings: %w", err)
	}
	return s, nil
}

func (p *Planner) UpdateSettings(ctx context.Context, patch SettingsPatch) (model.Settings, error) {
	s, err := p.Settings(ctx)
	if err != nil {
		return s, err
	}
	if patch.EmailReminders != nil {
		s.EmailReminders = *patch.EmailReminders
	}
	if patch.PreferredStartTime != nil {
		s.PreferredStartTime = *patch.PreferredStartTime
	}
	if patch.FocusMode != nil {
		s.FocusMode = *patch.FocusMode
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	if err := p.repo.SetSettings(ctx, s); err != nil {
		return s, fmt.Errorf("failed to save settings: %w", err)
	}
	p.log.Info("settings updated",
		zap.String("start", s.PreferredStartTime),
		zap.String("mode", string(s.FocusMode)),
		zap.Bool("email_reminders", s.EmailReminders))
	return s, nil
}
