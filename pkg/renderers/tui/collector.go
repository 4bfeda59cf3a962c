package tui

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/record"
	"github.com/goliatone/go-intake/pkg/session"
	"github.com/goliatone/go-intake/pkg/visibility"
)

// Collector walks a form definition in the terminal and stores the answers
// in a session.State.
type Collector struct {
	driver PromptDriver
	out    io.Writer
	theme  Theme
}

// New constructs a collector with defaults (survey driver on stdout).
func New(options ...Option) *Collector {
	c := &Collector{theme: DefaultTheme}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.driver == nil {
		c.driver = newSurveyDriver(c.out)
	}
	return c
}

// Name reports the collector identifier.
func (c *Collector) Name() string {
	return "tui"
}

// Collect prompts every field of form in order. Values already in state are
// offered as defaults so an interrupted session can be resumed. A field whose
// DependsOn checkbox is unticked is skipped and cleared; repeat groups are
// asked once per unit of their stepper.
func (c *Collector) Collect(ctx context.Context, form model.FormModel, state *session.State) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.driver == nil {
		return ErrNoDriver
	}
	if state == nil {
		return errors.New("tui: state is nil")
	}

	if title := strings.TrimSpace(form.Title); title != "" {
		if err := c.driver.Info(ctx, title); err != nil {
			return err
		}
	}
	if notice := plainText(form.Notice); notice != "" {
		if err := c.driver.Info(ctx, c.theme.InfoPrefix+notice); err != nil {
			return err
		}
	}

	for _, section := range form.Sections {
		if err := c.driver.Info(ctx, c.theme.SectionPrefix+section.Title); err != nil {
			return err
		}
		for _, field := range section.Fields {
			if err := c.promptField(ctx, field, field.Name, state, form); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Collector) promptField(ctx context.Context, field model.Field, path string, state *session.State, form model.FormModel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !visibility.Applies(field, state.Values()) {
		state.Delete(path)
		return nil
	}

	switch field.Type {
	case model.FieldTypeCheckbox:
		return c.promptCheckbox(ctx, field, path, state)
	case model.FieldTypeSelect, model.FieldTypeRadio:
		return c.promptSelect(ctx, field, path, state)
	case model.FieldTypeMultiSelect:
		return c.promptMultiSelect(ctx, field, path, state)
	case model.FieldTypeStepper:
		return c.promptStepper(ctx, field, path, state)
	case model.FieldTypeRepeat:
		return c.promptRepeat(ctx, field, path, state, form)
	case model.FieldTypeTextArea:
		return c.promptTextArea(ctx, field, path, state)
	default:
		return c.promptText(ctx, field, path, state)
	}
}

func (c *Collector) promptText(ctx context.Context, field model.Field, path string, state *session.State) error {
	defaultVal := state.GetString(path)
	if defaultVal == "" {
		defaultVal = field.Default
	}
	help := plainText(field.Help)
	if help == "" && field.Placeholder != "" {
		help = field.Placeholder
	}

	for {
		response, err := c.driver.Input(ctx, InputConfig{
			Message: displayLabel(field),
			Default: defaultVal,
			Help:    help,
		})
		if err != nil {
			return err
		}
		response = strings.TrimSpace(response)

		if response == "" && field.Required {
			if err := c.warn(ctx, requiredMessage(field)); err != nil {
				return err
			}
			continue
		}
		if field.Type == model.FieldTypeDate {
			if _, err := record.ParseDate(response); err != nil {
				if err := c.warn(ctx, "Enter the date as YYYY-MM-DD or leave it blank."); err != nil {
					return err
				}
				continue
			}
		}
		return state.SetValue(path, response)
	}
}

func (c *Collector) promptTextArea(ctx context.Context, field model.Field, path string, state *session.State) error {
	response, err := c.driver.TextArea(ctx, TextAreaConfig{
		Message: displayLabel(field),
		Default: state.GetString(path),
		Help:    plainText(field.Help),
	})
	if err != nil {
		return err
	}
	return state.SetValue(path, strings.TrimRight(response, "\n"))
}

func (c *Collector) promptCheckbox(ctx context.Context, field model.Field, path string, state *session.State) error {
	current, _ := state.GetValue(path)
	defaultVal, _ := current.(bool)
	resp, err := c.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(field),
		Default: defaultVal,
		Help:    plainText(field.Help),
	})
	if err != nil {
		return err
	}
	return state.SetValue(path, resp)
}

func (c *Collector) promptSelect(ctx context.Context, field model.Field, path string, state *session.State) error {
	labels := optionLabels(field)
	if len(labels) == 0 {
		return fmt.Errorf("tui: field %s has no options", path)
	}
	defaultIdx := field.OptionIndex(state.GetString(path))
	if defaultIdx < 0 {
		defaultIdx = max(field.OptionIndex(field.Default), 0)
	}

	for {
		idx, err := c.driver.Select(ctx, SelectConfig{
			Message:      displayLabel(field),
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         plainText(field.Help),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(labels) {
			if err := c.warn(ctx, "Choose one of the listed options."); err != nil {
				return err
			}
			continue
		}
		return state.SetValue(path, field.Options[idx].Value)
	}
}

func (c *Collector) promptMultiSelect(ctx context.Context, field model.Field, path string, state *session.State) error {
	labels := optionLabels(field)
	current, _ := state.GetValue(path)
	var defaults []int
	for _, value := range stringList(current) {
		if idx := field.OptionIndex(value); idx >= 0 {
			defaults = append(defaults, idx)
		}
	}

	indices, err := c.driver.MultiSelect(ctx, SelectConfig{
		Message:  displayLabel(field),
		Options:  labels,
		Defaults: defaults,
		Help:     plainText(field.Help),
		PageSize: len(labels),
	})
	if err != nil {
		return err
	}
	selected := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(field.Options) {
			selected = append(selected, field.Options[idx].Value)
		}
	}
	return state.SetValue(path, selected)
}

func (c *Collector) promptStepper(ctx context.Context, field model.Field, path string, state *session.State) error {
	lo, hi := field.Bounds()
	defaultVal := state.GetString(path)
	if defaultVal == "" {
		defaultVal = field.Default
	}

	for {
		input, err := c.driver.Input(ctx, InputConfig{
			Message: displayLabel(field),
			Default: defaultVal,
			Help:    fmt.Sprintf("A whole number from %d to %d.", lo, hi),
		})
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			input = strconv.Itoa(lo)
		}
		n, err := strconv.Atoi(input)
		if err != nil || n < lo || n > hi {
			if err := c.warn(ctx, fmt.Sprintf("Enter a whole number from %d to %d.", lo, hi)); err != nil {
				return err
			}
			continue
		}
		return state.SetValue(path, n)
	}
}

func (c *Collector) promptRepeat(ctx context.Context, group model.Field, path string, state *session.State, form model.FormModel) error {
	count := 0
	if stepper, ok := form.Lookup(group.RepeatFrom); ok {
		lo, hi := stepper.Bounds()
		n, _ := strconv.Atoi(state.GetString(group.RepeatFrom))
		count = min(max(n, lo), hi)
	}

	for i := 0; i < count; i++ {
		if err := c.driver.Info(ctx, rowLabel(group.ItemLabel, i+1)); err != nil {
			return err
		}
		for _, item := range group.Items {
			itemPath := fmt.Sprintf("%s.%d.%s", path, i, item.Name)
			if err := c.promptField(ctx, item, itemPath, state, form); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Collector) warn(ctx context.Context, msg string) error {
	return c.driver.Info(ctx, c.theme.ErrorPrefix+msg)
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func requiredMessage(field model.Field) string {
	if field.Name == record.FieldTaxpayerName {
		return record.MessageTaxpayerNameRequired
	}
	return displayLabel(field) + " is required."
}

func rowLabel(format string, n int) string {
	if strings.Contains(format, "%d") {
		return fmt.Sprintf(format, n)
	}
	return fmt.Sprintf("%s %d", strings.TrimSpace(format+" #"), n)
}

func optionLabels(field model.Field) []string {
	labels := make([]string, len(field.Options))
	for i, opt := range field.Options {
		labels[i] = opt.Label
	}
	return labels
}

func stringList(value any) []string {
	switch typed := value.(type) {
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// plainText drops inline markup meant for the browser.
func plainText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return strings.Join(strings.Fields(html.UnescapeString(plainPolicy.Sanitize(raw))), " ")
}
