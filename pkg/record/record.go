package record

import (
	"fmt"
	"strings"
)

// MaxDependents bounds the dependents stepper.
const MaxDependents = 15

// MedicalDetailsPending is reported when medical expenses were claimed without
// a description.
const MedicalDetailsPending = "Yes (details to follow)"

// Person identifies the taxpayer or the spouse.
type Person struct {
	Name        string `json:"name" yaml:"name"`
	DateOfBirth Date   `json:"dateOfBirth" yaml:"dateOfBirth"`
}

// Dependent is one claimed household member.
type Dependent struct {
	Name         string       `json:"name" yaml:"name"`
	Relationship Relationship `json:"relationship" yaml:"relationship"`
	DateOfBirth  Date         `json:"dateOfBirth" yaml:"dateOfBirth"`
}

// MedicalExpenses is present only when significant medical expenses were
// claimed.
type MedicalExpenses struct {
	Notes string `json:"notes" yaml:"notes"`
}

// Summary returns the value to report and whether the item applies at all.
// Blank notes fall back to MedicalDetailsPending.
func (m *MedicalExpenses) Summary() (string, bool) {
	if m == nil {
		return "", false
	}
	if notes := strings.TrimSpace(m.Notes); notes != "" {
		return m.Notes, true
	}
	return MedicalDetailsPending, true
}

// IntakeRecord is the complete set of answers from one collection session. It
// lives only for the duration of a single render.
type IntakeRecord struct {
	Taxpayer          Person           `json:"taxpayer" yaml:"taxpayer"`
	Spouse            Person           `json:"spouse" yaml:"spouse"`
	Address           string           `json:"address" yaml:"address"`
	Phone             string           `json:"phone" yaml:"phone"`
	Email             string           `json:"email" yaml:"email"`
	FilingStatus      FilingStatus     `json:"filingStatus" yaml:"filingStatus"`
	Dependents        []Dependent      `json:"dependents" yaml:"dependents"`
	IncomeSources     IncomeSources    `json:"incomeSources" yaml:"incomeSources"`
	PersonalItemSales SaleStatus       `json:"personalItemSales" yaml:"personalItemSales"`
	Deductions        Deductions       `json:"deductions" yaml:"deductions"`
	Medical           *MedicalExpenses `json:"medical,omitempty" yaml:"medical,omitempty"`
	AdditionalNotes   string           `json:"additionalNotes" yaml:"additionalNotes"`
}

// HasMedicalExpenses mirrors the checkbox on the collection form.
func (r IntakeRecord) HasMedicalExpenses() bool {
	return r.Medical != nil
}

// Validate enforces the presence of the taxpayer name, the dependents bound
// and closed-set membership. It returns nil or a *ValidationError.
func (r IntakeRecord) Validate() error {
	verr := &ValidationError{}

	if strings.TrimSpace(r.Taxpayer.Name) == "" {
		verr.Add(FieldTaxpayerName, MessageTaxpayerNameRequired, ErrTaxpayerNameRequired)
	}
	if !r.FilingStatus.Valid() {
		verr.Add(FieldFilingStatus, "Select a filing status.", ErrUnknownOption)
	}
	if len(r.Dependents) > MaxDependents {
		verr.Add(FieldDependents, fmt.Sprintf("At most %d dependents can be listed.", MaxDependents), ErrTooManyDependents)
	}
	for i, dep := range r.Dependents {
		if !dep.Relationship.Valid() {
			verr.Add(fmt.Sprintf("%s.%d.relationship", FieldDependents, i), "Select a relationship.", ErrUnknownOption)
		}
	}
	for _, src := range r.IncomeSources {
		if !src.Valid() {
			verr.Add(FieldIncomeSources, "Unknown income source selected.", ErrUnknownOption)
			break
		}
	}
	if !r.PersonalItemSales.Valid() {
		verr.Add(FieldPersonalItemSales, "Select an answer.", ErrUnknownOption)
	}
	for _, d := range r.Deductions {
		if !d.Valid() {
			verr.Add(FieldDeductions, "Unknown deduction selected.", ErrUnknownOption)
			break
		}
	}

	if !verr.HasErrors() {
		return nil
	}
	return verr
}
