package tui

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/collect"
	"github.com/goliatone/go-intake/pkg/form"
	"github.com/goliatone/go-intake/pkg/record"
	"github.com/goliatone/go-intake/pkg/session"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
	failWith     error
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestCollectFullInterview(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"", "Jane Doe", // required name retried
			"1980-05-17",
			"",
			"bad", "", // invalid date retried
			"555-0100",
			"jane@example.com",
			"20", "2", // stepper out of range retried
			"Tim", "2015-02-01",
			"Ann", "",
			"Surgery",
		},
		selectIdx: []int{1, 2, 0, 1},
		multiIdx:  [][]int{{0, 8}, {2}},
		confirm:   []bool{true},
		textAreas: []string{"1 Main St\n", "Moved in June"},
	}

	state := session.NewState(nil, nil)
	if err := New(WithPromptDriver(driver)).Collect(context.Background(), form.MustDefault(), state); err != nil {
		t.Fatalf("collect: %v", err)
	}

	if driver.inputPos != len(driver.inputs) || driver.selectPos != 4 || driver.textPos != 2 {
		t.Fatalf("unexpected prompt counts: inputs=%d selects=%d textareas=%d", driver.inputPos, driver.selectPos, driver.textPos)
	}
	for _, want := range []string{
		"! " + record.MessageTaxpayerNameRequired,
		"! Enter the date as YYYY-MM-DD or leave it blank.",
		"! Enter a whole number from 0 to 15.",
		"== 2. Dependents",
		"Dependent #2",
	} {
		if !slices.Contains(driver.infoMessages, want) {
			t.Errorf("missing message %q in %q", want, driver.infoMessages)
		}
	}

	rec, err := collect.Bind(state.Values())
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	if rec.Taxpayer.Name != "Jane Doe" || rec.Address != "1 Main St" || rec.FilingStatus != record.FilingMarriedJoint {
		t.Fatalf("unexpected personal answers %+v", rec)
	}
	wantDeps := []string{"Tim (Step-child) 2015-02-01", "Ann (Child) "}
	var gotDeps []string
	for _, dep := range rec.Dependents {
		gotDeps = append(gotDeps, dep.Name+" ("+dep.Relationship.String()+") "+dep.DateOfBirth.String())
	}
	if diff := cmp.Diff(wantDeps, gotDeps); diff != "" {
		t.Fatalf("dependents mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"W-2 Wages", "Rental Income"}, rec.IncomeSources.Labels()); diff != "" {
		t.Fatalf("income mismatch (-want +got):\n%s", diff)
	}
	if rec.PersonalItemSales != record.SaleAtLoss {
		t.Fatalf("personal item sales = %v", rec.PersonalItemSales)
	}
	if summary, ok := rec.Medical.Summary(); !ok || summary != "Surgery" {
		t.Fatalf("medical = %q, %v", summary, ok)
	}
	if rec.AdditionalNotes != "Moved in June" {
		t.Fatalf("notes = %q", rec.AdditionalNotes)
	}
}

func TestCollectSkipsUnclaimedMedicalNotes(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Jane", "", "", "", "", "", "0"},
		selectIdx: []int{0, 0},
		multiIdx:  [][]int{nil, nil},
		confirm:   []bool{false},
		textAreas: []string{"", ""},
	}

	state := session.NewState(map[string]any{
		"medical": map[string]any{"notes": "stale"},
	}, nil)
	if err := New(WithPromptDriver(driver)).Collect(context.Background(), form.MustDefault(), state); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if _, ok := state.GetValue(record.FieldMedicalNotes); ok {
		t.Fatalf("medical notes should be cleared when the checkbox is unticked")
	}
	if driver.inputPos != len(driver.inputs) {
		t.Fatalf("expected %d inputs, used %d", len(driver.inputs), driver.inputPos)
	}
}

func TestCollectPropagatesAbort(t *testing.T) {
	driver := &stubDriver{failWith: ErrAborted}
	err := New(WithPromptDriver(driver)).Collect(context.Background(), form.MustDefault(), session.NewState(nil, nil))
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestCollectPreconditions(t *testing.T) {
	c := New(WithPromptDriver(&stubDriver{}))
	if err := c.Collect(context.Background(), form.MustDefault(), nil); err == nil {
		t.Fatalf("expected error for nil state")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Collect(ctx, form.MustDefault(), session.NewState(nil, nil)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPlainTextStripsMarkup(t *testing.T) {
	got := plainText("<strong>SECURITY NOTICE:</strong> Do not\n include <em>SSNs</em> &amp; more")
	if got != "SECURITY NOTICE: Do not include SSNs & more" {
		t.Fatalf("plainText = %q", got)
	}
}
