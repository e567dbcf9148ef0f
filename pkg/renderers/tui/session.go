package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-rentalcontract/pkg/contract"
	"github.com/goliatone/go-rentalcontract/pkg/form"
	"github.com/goliatone/go-rentalcontract/pkg/model"
)

const driverQuestion = "Ajouter un conducteur additionnel ?"

// Session fills the contract form in a terminal, one field at a time. Each
// answer is validated as the field is left; an invalid answer is reported
// and asked again.
type Session struct {
	driver      PromptDriver
	form        model.FormModel
	theme       Theme
	maxAttempts int
}

// New constructs a session with the survey driver and the contract form.
func New(options ...Option) *Session {
	s := &Session{
		form:        contract.Form(),
		theme:       DefaultTheme,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Collect prompts every field, using initial as defaults, and returns the
// non-blank answers. The returned values have passed per-field validation
// but not necessarily the whole form; see Run.
func (s *Session) Collect(ctx context.Context, initial contract.Values) (contract.Values, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	state := form.New(initial)

	for _, section := range s.form.Sections {
		fields := s.form.SectionFields(section.ID)
		if len(fields) == 0 {
			continue
		}
		if err := s.info(ctx, s.theme.SectionPrefix+section.Title); err != nil {
			return nil, err
		}

		if section.ID == contract.SectionDriver {
			wanted, err := s.driver.Confirm(ctx, ConfirmConfig{
				Message: driverQuestion,
				Default: hasAny(state.Values, fields),
			})
			if err != nil {
				return nil, err
			}
			if !wanted {
				for _, field := range fields {
					state = form.Change(state, field.Name, "")
				}
				continue
			}
		}

		for _, field := range fields {
			var err error
			state, err = s.promptField(ctx, state, field)
			if err != nil {
				return nil, err
			}
		}
	}
	return compact(state.Values), nil
}

// Run collects the form and submits it. Errors spanning fields that slipped
// through are returned as validation.FieldErrors.
func (s *Session) Run(ctx context.Context, initial contract.Values) (contract.Record, error) {
	values, err := s.Collect(ctx, initial)
	if err != nil {
		return contract.Record{}, err
	}
	state := form.Submit(form.New(values))
	if !state.Finalized() {
		return contract.Record{}, state.Errors
	}
	return *state.Record, nil
}

func (s *Session) promptField(ctx context.Context, state form.State, field model.Field) (form.State, error) {
	leave := func(value string) (form.State, []string) {
		next := form.Blur(form.Change(state, field.Name, strings.TrimSpace(value)), field.Name)
		return next, form.VisibleErrors(next)[field.Name]
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		value, err := s.ask(ctx, state, field, leave)
		if err != nil {
			return state, err
		}
		next, errs := leave(value)
		if len(errs) == 0 {
			return next, nil
		}
		if err := s.info(ctx, s.theme.ErrorPrefix+errs[0]); err != nil {
			return state, err
		}
	}
	return state, fmt.Errorf("%w: %s", ErrTooManyAttempts, field.Name)
}

func (s *Session) ask(ctx context.Context, state form.State, field model.Field, leave func(string) (form.State, []string)) (string, error) {
	current := state.Values.Get(field.Name)

	if field.Type == model.FieldTypeSelect {
		labels := make([]string, len(field.Options))
		defaultIndex := 0
		for i, opt := range field.Options {
			labels[i] = opt.Label
			if opt.Value == current {
				defaultIndex = i
			}
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      labels,
			DefaultIndex: defaultIndex,
			PageSize:     len(labels),
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(field.Options) {
			return "", nil
		}
		return field.Options[idx].Value, nil
	}

	return s.driver.Input(ctx, InputConfig{
		Message: label(field),
		Default: current,
		Help:    help(field),
		Validator: func(value string) error {
			if _, errs := leave(value); len(errs) > 0 {
				return errors.New(errs[0])
			}
			return nil
		},
	})
}

func (s *Session) info(ctx context.Context, msg string) error {
	return s.driver.Info(ctx, msg)
}

func label(field model.Field) string {
	if field.Required {
		return field.Label + " *"
	}
	return field.Label
}

func help(field model.Field) string {
	switch field.Type {
	case model.FieldTypeDate:
		return "Format AAAA-MM-JJ ou JJ/MM/AAAA"
	case model.FieldTypeTime:
		return "Format HH:MM"
	case model.FieldTypeNumber:
		return "Nombre, la virgule décimale est acceptée"
	default:
		return field.Placeholder
	}
}

func hasAny(values contract.Values, fields []model.Field) bool {
	for _, field := range fields {
		if values.Get(field.Name) != "" {
			return true
		}
	}
	return false
}

func compact(values contract.Values) contract.Values {
	out := make(contract.Values, len(values))
	for name, value := range values {
		if value != "" {
			out[name] = value
		}
	}
	return out
}
