// Package remind manages the daily reminder intent: a time of day and an
// on/off flag. Actual notification delivery belongs to a platform
// Scheduler; the core only validates and persists the intent.
package remind

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nnazuaff/LaporanKeuangan/internal/prefs"
)

var ErrBadTime = errors.New("reminder time must be HH:MM")

// ParseTimeOfDay parses a strict 24h "HH:MM" string.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}

	hour, err = strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}

	minute, err = strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}

	return hour, minute, nil
}

// Scheduler is the platform notification capability: "remind me daily at
// HH:MM". Platforms without notifications inject Unavailable.
type Scheduler interface {
	Available() bool
	Schedule(hour, minute int) error
	Cancel() error
}

// Unavailable is the no-capability variant of Scheduler.
type Unavailable struct{}

func (Unavailable) Available() bool                 { return false }
func (Unavailable) Schedule(hour, minute int) error { return nil }
func (Unavailable) Cancel() error                   { return nil }

type Service struct {
	prefs     *prefs.Store
	scheduler Scheduler
}

func NewService(p *prefs.Store, scheduler Scheduler) *Service {
	return &Service{prefs: p, scheduler: scheduler}
}

// Apply validates, persists and (de)schedules the reminder. Preferences
// outside the reminder are left untouched.
func (s *Service) Apply(enabled bool, at string) error {
	var hour, minute int

	if enabled {
		var err error
		if hour, minute, err = ParseTimeOfDay(at); err != nil {
			return err
		}
	}

	p, err := s.prefs.Load()
	if err != nil {
		return err
	}

	p.ReminderEnabled = enabled
	if enabled {
		p.ReminderAt = at
	}

	if err := s.prefs.Save(p); err != nil {
		return err
	}

	if !s.scheduler.Available() {
		return nil
	}

	if enabled {
		return s.scheduler.Schedule(hour, minute)
	}

	return s.scheduler.Cancel()
}

// Current returns the persisted reminder settings.
func (s *Service) Current() (enabled bool, at string, err error) {
	p, err := s.prefs.Load()
	if err != nil {
		return false, "", err
	}

	return p.ReminderEnabled, p.ReminderAt, nil
}
