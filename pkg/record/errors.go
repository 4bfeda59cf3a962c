package record

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrTaxpayerNameRequired marks a record without a taxpayer name.
	ErrTaxpayerNameRequired = errors.New("record: taxpayer name is required")
	// ErrTooManyDependents marks a record listing more than MaxDependents.
	ErrTooManyDependents = errors.New("record: too many dependents")
	// ErrUnknownOption marks a value outside one of the closed sets.
	ErrUnknownOption = errors.New("record: unknown option")
	// ErrInvalidDate marks an unparseable date.
	ErrInvalidDate = errors.New("record: invalid date")
)

// MessageTaxpayerNameRequired is the blocking message shown to the user.
const MessageTaxpayerNameRequired = "Please enter the Taxpayer Name."

// Dotted field paths shared by collectors, the binder and validation.
const (
	FieldTaxpayerName        = "taxpayer.name"
	FieldTaxpayerDateOfBirth = "taxpayer.dob"
	FieldSpouseName          = "spouse.name"
	FieldSpouseDateOfBirth   = "spouse.dob"
	FieldAddress             = "address"
	FieldPhone               = "phone"
	FieldEmail               = "email"
	FieldFilingStatus        = "filing_status"
	FieldDependentCount      = "dependent_count"
	FieldDependents          = "dependents"
	FieldIncomeSources       = "income_sources"
	FieldPersonalItemSales   = "personal_item_sales"
	FieldDeductions          = "deductions"
	FieldMedicalClaimed      = "medical.claimed"
	FieldMedicalNotes        = "medical.notes"
	FieldAdditionalNotes     = "additional_notes"
)

// ValidationError collects field-level messages keyed by dotted path and
// form-level messages. Unwrap exposes the sentinel causes so callers can use
// errors.Is.
type ValidationError struct {
	Fields map[string][]string
	Form   []string
	causes []error
}

// Add records a message against a field path. Blank paths become form-level
// messages.
func (e *ValidationError) Add(path, message string, cause error) {
	path = strings.TrimSpace(path)
	if path == "" {
		e.AddForm(message, cause)
		return
	}
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[path] = normalizeMessages(append(e.Fields[path], message))
	e.addCause(cause)
}

// AddForm records a message that is not tied to a single field.
func (e *ValidationError) AddForm(message string, cause error) {
	e.Form = normalizeMessages(append(e.Form, message))
	e.addCause(cause)
}

// Merge folds other into e.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for path, messages := range other.Fields {
		for _, message := range messages {
			e.Add(path, message, nil)
		}
	}
	for _, message := range other.Form {
		e.AddForm(message, nil)
	}
	for _, cause := range other.causes {
		e.addCause(cause)
	}
}

// HasErrors reports whether any message was recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && (len(e.Fields) > 0 || len(e.Form) > 0)
}

// FieldErrors returns the messages attached to path.
func (e *ValidationError) FieldErrors(path string) []string {
	if e == nil {
		return nil
	}
	return e.Fields[path]
}

// Messages flattens form messages followed by field messages in path order.
// The taxpayer name message always leads since it blocks submission.
func (e *ValidationError) Messages() []string {
	if e == nil {
		return nil
	}
	out := append([]string(nil), e.Form...)
	out = append(out, e.Fields[FieldTaxpayerName]...)

	paths := make([]string, 0, len(e.Fields))
	for path := range e.Fields {
		if path == FieldTaxpayerName {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		out = append(out, e.Fields[path]...)
	}
	return normalizeMessages(out)
}

func (e *ValidationError) Error() string {
	if !e.HasErrors() {
		return "record: validation failed"
	}
	return "record: validation failed: " + strings.Join(e.Messages(), "; ")
}

// Unwrap returns the sentinel errors behind the messages.
func (e *ValidationError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return e.causes
}

func (e *ValidationError) addCause(cause error) {
	if cause == nil {
		return
	}
	for _, existing := range e.causes {
		if existing == cause {
			return
		}
	}
	e.causes = append(e.causes, cause)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
