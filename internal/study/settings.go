package study

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func (s *StudyService) loadSettings(def NotificationSettings) NotificationSettings {
	ns := Read(s.store, s.logger, KeyNotificationSettings, def)
	if !ns.LeadTime.Valid() {
		s.logger.Warn("stored lead time is unknown, using 1day", "lead", string(ns.LeadTime))
		ns.LeadTime = LeadTime1Day
	}
	return ns
}

func (s *StudyService) loadTheme(def Theme) Theme {
	t := Read(s.store, s.logger, KeyTheme, def)
	if t != ThemeDark && t != ThemeLight {
		return def
	}
	return t
}

// NotificationSettings returns the current reminder configuration.
func (s *StudyService) NotificationSettings() NotificationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SaveNotificationSettings replaces the reminder configuration.
func (s *StudyService) SaveNotificationSettings(ns NotificationSettings) error {
	err := validation.ValidateStruct(&ns,
		validation.Field(&ns.LeadTime,
			validation.Required,
			validation.In(LeadTime30Min, LeadTime1Hour, LeadTime1Day, LeadTime1Week),
		),
	)
	if err != nil {
		return invalid("notification settings", err)
	}

	saved := Write(s.store, s.logger, KeyNotificationSettings, ns)

	s.mu.Lock()
	s.settings = ns
	s.failed[KeyNotificationSettings] = !saved
	s.mu.Unlock()

	s.logger.Info("notification settings saved", "enabled", ns.Enabled, "lead", string(ns.LeadTime))
	return nil
}

// Theme returns the persisted UI preference.
func (s *StudyService) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// ToggleTheme flips between dark and light and returns the new theme.
func (s *StudyService) ToggleTheme() Theme {
	s.mu.Lock()
	if s.theme == ThemeDark {
		s.theme = ThemeLight
	} else {
		s.theme = ThemeDark
	}
	t := s.theme
	s.mu.Unlock()

	saved := Write(s.store, s.logger, KeyTheme, t)

	s.mu.Lock()
	s.failed[KeyTheme] = !saved
	s.mu.Unlock()
	return t
}
