package collect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-intake/pkg/record"
	"github.com/goliatone/go-intake/pkg/session"
	"github.com/goliatone/go-intake/pkg/visibility"
)

const (
	messageInvalidDate   = "Enter the date as YYYY-MM-DD."
	messageInvalidNumber = "Enter a whole number."
	messageUnknownOption = "Choose one of the listed options."
)

// Bind turns collected values into a record. Coercion is lenient: strings,
// booleans, numbers and string lists are accepted in their usual encodings.
// Values that cannot be interpreted (bad dates, unknown option keys) are
// reported as a *record.ValidationError alongside the best-effort record.
// Bind does not enforce the record invariants; call Validate for that.
func Bind(values map[string]any) (record.IntakeRecord, error) {
	state := session.NewState(values, nil)
	verr := &record.ValidationError{}
	b := binder{state: state, verr: verr}

	rec := record.IntakeRecord{
		Taxpayer: record.Person{
			Name:        b.text(record.FieldTaxpayerName),
			DateOfBirth: b.date(record.FieldTaxpayerDateOfBirth),
		},
		Spouse: record.Person{
			Name:        b.text(record.FieldSpouseName),
			DateOfBirth: b.date(record.FieldSpouseDateOfBirth),
		},
		Address:         b.text(record.FieldAddress),
		Phone:           b.text(record.FieldPhone),
		Email:           b.text(record.FieldEmail),
		AdditionalNotes: b.text(record.FieldAdditionalNotes),
	}

	if raw := b.text(record.FieldFilingStatus); raw != "" {
		status, err := record.ParseFilingStatus(raw)
		b.report(record.FieldFilingStatus, messageUnknownOption, err)
		rec.FilingStatus = status
	}
	if raw := b.text(record.FieldPersonalItemSales); raw != "" {
		sales, err := record.ParseSaleStatus(raw)
		b.report(record.FieldPersonalItemSales, messageUnknownOption, err)
		rec.PersonalItemSales = sales
	}

	rawCount, _ := state.GetValue(record.FieldDependentCount)
	n, err := toInt(rawCount)
	b.report(record.FieldDependentCount, messageInvalidNumber, err)
	count := Clamp(n, 0, record.MaxDependents)
	for i := 0; i < count; i++ {
		prefix := fmt.Sprintf("%s.%d.", record.FieldDependents, i)
		dep := record.Dependent{
			Name:        b.text(prefix + "name"),
			DateOfBirth: b.date(prefix + "dob"),
		}
		if raw := b.text(prefix + "relationship"); raw != "" {
			rel, err := record.ParseRelationship(raw)
			b.report(prefix+"relationship", messageUnknownOption, err)
			dep.Relationship = rel
		}
		rec.Dependents = append(rec.Dependents, dep)
	}

	var sources []record.IncomeSource
	for _, raw := range b.list(record.FieldIncomeSources) {
		src, err := record.ParseIncomeSource(raw)
		if b.report(record.FieldIncomeSources, messageUnknownOption, err) {
			continue
		}
		sources = append(sources, src)
	}
	rec.IncomeSources = record.NewIncomeSources(sources...)

	var deductions []record.Deduction
	for _, raw := range b.list(record.FieldDeductions) {
		d, err := record.ParseDeduction(raw)
		if b.report(record.FieldDeductions, messageUnknownOption, err) {
			continue
		}
		deductions = append(deductions, d)
	}
	rec.Deductions = record.NewDeductions(deductions...)

	if b.flag(record.FieldMedicalClaimed) {
		rec.Medical = &record.MedicalExpenses{Notes: b.text(record.FieldMedicalNotes)}
	}

	if verr.HasErrors() {
		return rec, verr
	}
	return rec, nil
}

// DependentCount reads the dependents stepper clamped to [0, MaxDependents].
// Unparseable counts read as zero.
func DependentCount(values map[string]any) int {
	raw, _ := session.NewState(values, nil).GetValue(record.FieldDependentCount)
	n, _ := toInt(raw)
	return Clamp(n, 0, record.MaxDependents)
}

// Clamp bounds n to [lo, hi].
func Clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}

type binder struct {
	state *session.State
	verr  *record.ValidationError
}

// report records err against path and reports whether it was non-nil.
func (b binder) report(path, message string, err error) bool {
	if err == nil {
		return false
	}
	b.verr.Add(path, message, err)
	return true
}

func (b binder) text(path string) string {
	raw, _ := b.state.GetValue(path)
	return strings.TrimSpace(toText(raw))
}

func (b binder) date(path string) record.Date {
	d, err := record.ParseDate(b.text(path))
	b.report(path, messageInvalidDate, err)
	return d
}

func (b binder) flag(path string) bool {
	raw, _ := b.state.GetValue(path)
	return visibility.Ticked(raw)
}

func (b binder) list(path string) []string {
	raw, _ := b.state.GetValue(path)
	return toList(raw)
}

func toText(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case []string:
		if len(typed) > 0 {
			return typed[0]
		}
		return ""
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}

func toInt(value any) (int, error) {
	switch typed := value.(type) {
	case nil:
		return 0, nil
	case int:
		return typed, nil
	case int64:
		return int(typed), nil
	case uint64:
		return int(typed), nil
	case float64:
		return int(typed), nil
	case string:
		typed = strings.TrimSpace(typed)
		if typed == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(typed)
		if err != nil {
			return 0, fmt.Errorf("collect: %q: %w", typed, err)
		}
		return n, nil
	case []string:
		return toInt(toText(typed))
	default:
		return 0, fmt.Errorf("collect: cannot read %T as a number", value)
	}
}

func toList(value any) []string {
	var raw []string
	switch typed := value.(type) {
	case nil:
		return nil
	case []string:
		raw = typed
	case []any:
		for _, item := range typed {
			raw = append(raw, toText(item))
		}
	default:
		raw = []string{toText(typed)}
	}
	out := raw[:0:0]
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
