package tui

import "github.com/goliatone/go-rentalcontract/pkg/model"

// Theme captures optional prefixes applied to printed messages.
type Theme struct {
	SectionPrefix string
	ErrorPrefix   string
}

// DefaultTheme marks sections and errors without ANSI sequences.
var DefaultTheme = Theme{
	SectionPrefix: "== ",
	ErrorPrefix:   "! ",
}

// DefaultMaxAttempts bounds re-prompts of a single field.
const DefaultMaxAttempts = 5

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithForm replaces the contract form, for instance one decorated with
// currency labels.
func WithForm(form model.FormModel) Option {
	return func(s *Session) {
		if len(form.Fields) > 0 {
			s.form = form
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithMaxAttempts bounds how many times an invalid field is asked again.
// Zero or less keeps the default.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}
