// Package tui runs an interactive terminal loop: each committed reading is
// evaluated against the reference table and its estimate printed, until the
// user quits.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-cellcount/pkg/model"
	"github.com/goliatone/go-cellcount/pkg/render"
	"github.com/goliatone/go-cellcount/pkg/renderers/text"
)

// Menu choices offered when the reading is left blank.
const (
	ChoiceContinue = "Enter another reading"
	ChoiceTable    = "Show reference table"
	ChoiceQuit     = "Quit"
)

var menu = []string{ChoiceContinue, ChoiceTable, ChoiceQuit}

// Theme captures optional message prefixes.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
}

// Option configures the session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput sets where the default driver prints results.
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithObserver registers a callback invoked with every evaluated page.
func WithObserver(fn func(model.Page)) Option {
	return func(s *Session) {
		s.observe = fn
	}
}

// Session is a prompt loop bound to one builder.
type Session struct {
	builder *model.Builder
	driver  PromptDriver
	out     io.Writer
	theme   Theme
	observe func(model.Page)
	report  render.Renderer
	table   render.Renderer
}

// New constructs a session. Without WithPromptDriver the survey-backed
// terminal driver is used.
func New(builder *model.Builder, options ...Option) (*Session, error) {
	if builder == nil || builder.Table().Len() == 0 {
		return nil, errors.New("tui: builder with a reference table is required")
	}

	s := &Session{
		builder: builder,
		report:  text.New(text.WithoutTable()),
		table:   text.New(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = newSurveyDriver(s.out)
	}
	return s, nil
}

// Run prompts until the user quits. Quitting returns nil; Ctrl+C returns
// ErrAborted.
func (s *Session) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}

	info := s.builder.Table()
	help := fmt.Sprintf("Readings between %s and %s are interpolated. Leave blank for more options.",
		model.FormatOpticalDensity(info.Min().X), model.FormatOpticalDensity(info.Max().X))

	for {
		raw, err := s.driver.Input(ctx, InputConfig{
			Message: s.theme.PromptPrefix + "Optical Density",
			Help:    help,
		})
		if err != nil {
			return err
		}

		if strings.TrimSpace(raw) == "" {
			quit, err := s.menu(ctx)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			continue
		}

		page := s.builder.Build(raw)
		if s.observe != nil {
			s.observe(page)
		}
		if err := s.print(ctx, s.report, page); err != nil {
			return err
		}
	}
}

func (s *Session) menu(ctx context.Context) (bool, error) {
	choice, err := s.driver.Select(ctx, SelectConfig{
		Message: s.theme.PromptPrefix + "What next?",
		Options: menu,
	})
	if err != nil {
		return false, err
	}

	switch choice {
	case 1:
		return false, s.print(ctx, s.table, s.builder.Build(""))
	case 2:
		return s.driver.Confirm(ctx, ConfirmConfig{
			Message: s.theme.PromptPrefix + "Quit?",
			Default: true,
		})
	default:
		return false, nil
	}
}

func (s *Session) print(ctx context.Context, renderer render.Renderer, page model.Page) error {
	out, err := renderer.Render(ctx, page, render.RenderOptions{})
	if err != nil {
		return fmt.Errorf("tui: render %s: %w", renderer.Name(), err)
	}
	return s.driver.Info(ctx, s.theme.InfoPrefix+strings.TrimRight(string(out), "\n"))
}
