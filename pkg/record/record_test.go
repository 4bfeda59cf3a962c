package record_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-intake/pkg/record"
)

func TestValidate_RequiresTaxpayerName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		rec := record.IntakeRecord{Taxpayer: record.Person{Name: name}}
		err := rec.Validate()
		if err == nil {
			t.Fatalf("expected validation error for name %q", name)
		}
		if !errors.Is(err, record.ErrTaxpayerNameRequired) {
			t.Fatalf("expected ErrTaxpayerNameRequired, got %v", err)
		}
		var verr *record.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *ValidationError, got %T", err)
		}
		want := []string{record.MessageTaxpayerNameRequired}
		if diff := cmp.Diff(want, verr.FieldErrors(record.FieldTaxpayerName)); diff != "" {
			t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestValidate_MinimalRecordPasses(t *testing.T) {
	rec := record.IntakeRecord{Taxpayer: record.Person{Name: "Jane Doe"}}
	if err := rec.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_DependentsBound(t *testing.T) {
	rec := record.IntakeRecord{Taxpayer: record.Person{Name: "Jane"}}
	rec.Dependents = make([]record.Dependent, record.MaxDependents)
	if err := rec.Validate(); err != nil {
		t.Fatalf("15 dependents should be accepted: %v", err)
	}

	rec.Dependents = append(rec.Dependents, record.Dependent{Name: "extra"})
	err := rec.Validate()
	if !errors.Is(err, record.ErrTooManyDependents) {
		t.Fatalf("expected ErrTooManyDependents, got %v", err)
	}
}

func TestValidate_RejectsOutOfSetValues(t *testing.T) {
	rec := record.IntakeRecord{
		Taxpayer:          record.Person{Name: "Jane"},
		FilingStatus:      record.FilingStatus(42),
		PersonalItemSales: record.SaleStatus(9),
		IncomeSources:     record.IncomeSources{0},
		Deductions:        record.Deductions{99},
		Dependents:        []record.Dependent{{Name: "Sam", Relationship: record.Relationship(7)}},
	}
	err := rec.Validate()
	if !errors.Is(err, record.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
	var verr *record.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError")
	}
	for _, path := range []string{
		record.FieldFilingStatus,
		record.FieldPersonalItemSales,
		record.FieldIncomeSources,
		record.FieldDeductions,
		"dependents.0.relationship",
	} {
		if len(verr.FieldErrors(path)) == 0 {
			t.Errorf("expected error at %s", path)
		}
	}
}

func TestValidationError_MessagesLeadWithTaxpayerName(t *testing.T) {
	verr := &record.ValidationError{}
	verr.Add("address", "Address too long.", nil)
	verr.Add(record.FieldTaxpayerName, record.MessageTaxpayerNameRequired, record.ErrTaxpayerNameRequired)
	verr.Add(record.FieldTaxpayerName, "  "+record.MessageTaxpayerNameRequired+" ", nil)
	verr.AddForm("Form level", nil)

	want := []string{"Form level", record.MessageTaxpayerNameRequired, "Address too long."}
	if diff := cmp.Diff(want, verr.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestMedicalExpenses_Summary(t *testing.T) {
	var absent *record.MedicalExpenses
	if _, ok := absent.Summary(); ok {
		t.Fatalf("nil medical expenses must not apply")
	}

	value, ok := (&record.MedicalExpenses{Notes: "  "}).Summary()
	if !ok || value != record.MedicalDetailsPending {
		t.Fatalf("blank notes: got %q %v", value, ok)
	}

	value, ok = (&record.MedicalExpenses{Notes: "Orthodontics"}).Summary()
	if !ok || value != "Orthodontics" {
		t.Fatalf("notes: got %q %v", value, ok)
	}
}

func TestParseEnums_AcceptKeysAndLabels(t *testing.T) {
	status, err := record.ParseFilingStatus("Married Filing Jointly")
	if err != nil || status != record.FilingMarriedJoint {
		t.Fatalf("label parse: %v %v", status, err)
	}
	status, err = record.ParseFilingStatus("HEAD_OF_HOUSEHOLD")
	if err != nil || status != record.FilingHeadOfHousehold {
		t.Fatalf("key parse: %v %v", status, err)
	}
	if _, err := record.ParseRelationship("cousin"); !errors.Is(err, record.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
	if _, err := record.ParseIncomeSource(""); !errors.Is(err, record.ErrUnknownOption) {
		t.Fatalf("blank income source must be rejected")
	}
	rel, err := record.ParseRelationship("Step-child")
	if err != nil || rel != record.RelationshipStepChild {
		t.Fatalf("relationship parse: %v %v", rel, err)
	}
}

func TestSets_NormaliseToCatalogueOrder(t *testing.T) {
	sources := record.NewIncomeSources(record.IncomeRental, record.IncomeW2Wages, record.IncomeRental)
	want := []string{"W-2 Wages", "Rental Income"}
	if diff := cmp.Diff(want, sources.Labels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	if got := record.NewDeductions().Labels(); len(got) != 0 {
		t.Fatalf("empty set labels: %v", got)
	}
	if got := len(record.AllIncomeSources()); got != 10 {
		t.Fatalf("income catalogue size = %d", got)
	}
	if got := len(record.AllDeductions()); got != 8 {
		t.Fatalf("deduction catalogue size = %d", got)
	}
}

func TestOptions_Catalogues(t *testing.T) {
	opts, ok := record.Options(record.CatalogueRelationship)
	if !ok {
		t.Fatalf("relationship catalogue missing")
	}
	want := []record.Option{
		{Key: "child", Label: "Child"},
		{Key: "parent", Label: "Parent"},
		{Key: "step_child", Label: "Step-child"},
		{Key: "other", Label: "Other"},
	}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if _, ok := record.Options("colours"); ok {
		t.Fatalf("unknown catalogue should not resolve")
	}
}

func TestParseDate(t *testing.T) {
	d, err := record.ParseDate("2015-05-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !d.Time().Equal(time.Date(2015, time.May, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time %v", d.Time())
	}
	if d.String() != "2015-05-01" {
		t.Fatalf("string = %q", d.String())
	}

	for _, raw := range []string{"", "  ", "N/A", "n/a"} {
		d, err := record.ParseDate(raw)
		if err != nil || !d.IsZero() {
			t.Fatalf("%q should be absent: %v %v", raw, d, err)
		}
	}

	if _, err := record.ParseDate("05/01/2015"); !errors.Is(err, record.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestRecord_DecodesFromYAML(t *testing.T) {
	src := []byte(`
taxpayer:
  name: Jane Doe
  dateOfBirth: 1980-02-03
filingStatus: married_joint
dependents:
  - name: Sam Doe
    relationship: child
    dateOfBirth: 2015-05-01
  - name: Max Doe
    relationship: Other
incomeSources: [w2_wages, Rental Income]
personalItemSales: sold_at_loss
medical:
  notes: Surgery
`)
	var rec record.IntakeRecord
	if err := yaml.Unmarshal(src, &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Taxpayer.DateOfBirth.String() != "1980-02-03" {
		t.Fatalf("dob = %q", rec.Taxpayer.DateOfBirth)
	}
	if rec.FilingStatus != record.FilingMarriedJoint {
		t.Fatalf("filing status = %v", rec.FilingStatus)
	}
	if len(rec.Dependents) != 2 || rec.Dependents[1].Relationship != record.RelationshipOther || !rec.Dependents[1].DateOfBirth.IsZero() {
		t.Fatalf("dependents = %+v", rec.Dependents)
	}
	if diff := cmp.Diff([]string{"W-2 Wages", "Rental Income"}, rec.IncomeSources.Labels()); diff != "" {
		t.Fatalf("income mismatch (-want +got):\n%s", diff)
	}
	if rec.PersonalItemSales != record.SaleAtLoss || !rec.HasMedicalExpenses() {
		t.Fatalf("unexpected record %+v", rec)
	}
}
