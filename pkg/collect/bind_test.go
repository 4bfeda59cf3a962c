package collect

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/form"
	"github.com/goliatone/go-intake/pkg/record"
)

func TestBindFullAnswers(t *testing.T) {
	values := map[string]any{
		"taxpayer":        map[string]any{"name": "  Jane Doe ", "dob": "1980-05-17"},
		"spouse":          map[string]any{"name": "John Doe", "dob": ""},
		"address":         "1 Main St",
		"phone":           "555-0100",
		"email":           "jane@example.com",
		"filing_status":   "Married Filing Jointly",
		"dependent_count": "2",
		"dependents": []any{
			map[string]any{"name": "Tim", "relationship": "child", "dob": "2015-02-01"},
			map[string]any{"name": "Ann", "relationship": "Parent"},
			map[string]any{"name": "Ignored"},
		},
		"income_sources":      []any{"social_security", "w2_wages"},
		"personal_item_sales": "sold_at_loss",
		"deductions":          []string{"mortgage_interest"},
		"medical":             map[string]any{"claimed": "on", "notes": "Surgery"},
		"additional_notes":    "Moved in June",
	}

	rec, err := Bind(values)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	want := record.IntakeRecord{
		Taxpayer:     record.Person{Name: "Jane Doe", DateOfBirth: record.NewDate(1980, 5, 17)},
		Spouse:       record.Person{Name: "John Doe"},
		Address:      "1 Main St",
		Phone:        "555-0100",
		Email:        "jane@example.com",
		FilingStatus: record.FilingMarriedJoint,
		Dependents: []record.Dependent{
			{Name: "Tim", Relationship: record.RelationshipChild, DateOfBirth: record.NewDate(2015, 2, 1)},
			{Name: "Ann", Relationship: record.RelationshipParent},
		},
		IncomeSources:     record.NewIncomeSources(record.IncomeW2Wages, record.IncomeSocialSecurity),
		PersonalItemSales: record.SaleAtLoss,
		Deductions:        record.NewDeductions(record.DeductionMortgageInterest),
		Medical:           &record.MedicalExpenses{Notes: "Surgery"},
		AdditionalNotes:   "Moved in June",
	}
	if diff := cmp.Diff(want, rec, cmp.Comparer(func(a, b record.Date) bool { return a.String() == b.String() })); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestBindDefaultsAndMedicalGate(t *testing.T) {
	rec, err := Bind(map[string]any{
		"taxpayer": map[string]any{"name": "Jane"},
		"medical":  map[string]any{"claimed": false, "notes": "left over text"},
	})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if rec.FilingStatus != record.FilingSingle {
		t.Fatalf("filing status = %v", rec.FilingStatus)
	}
	if rec.PersonalItemSales != record.SaleNo {
		t.Fatalf("personal item sales = %v", rec.PersonalItemSales)
	}
	if rec.Medical != nil {
		t.Fatalf("medical notes must be ignored while unclaimed")
	}
	if len(rec.Dependents) != 0 || len(rec.IncomeSources) != 0 || len(rec.Deductions) != 0 {
		t.Fatalf("expected empty collections, got %+v", rec)
	}
}

func TestBindClampsDependentCount(t *testing.T) {
	rows := make([]any, 20)
	for i := range rows {
		rows[i] = map[string]any{"name": "kid"}
	}

	rec, err := Bind(map[string]any{"dependent_count": 40, "dependents": rows})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if len(rec.Dependents) != record.MaxDependents {
		t.Fatalf("dependents = %d, want %d", len(rec.Dependents), record.MaxDependents)
	}

	rec, err = Bind(map[string]any{"dependent_count": -3, "dependents": rows})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if len(rec.Dependents) != 0 {
		t.Fatalf("negative count produced %d dependents", len(rec.Dependents))
	}

	if got := DependentCount(map[string]any{"dependent_count": 7.0}); got != 7 {
		t.Fatalf("DependentCount = %d", got)
	}
}

func TestBindReportsUninterpretableValues(t *testing.T) {
	rec, err := Bind(map[string]any{
		"taxpayer":        map[string]any{"name": "Jane", "dob": "17/05/1980"},
		"filing_status":   "complicated",
		"dependent_count": "two",
		"income_sources":  []string{"w2_wages", "lottery"},
	})

	var verr *record.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *record.ValidationError, got %v", err)
	}
	if !errors.Is(err, record.ErrInvalidDate) || !errors.Is(err, record.ErrUnknownOption) {
		t.Fatalf("expected sentinel causes, got %v", err)
	}
	for _, path := range []string{
		record.FieldTaxpayerDateOfBirth,
		record.FieldFilingStatus,
		record.FieldDependentCount,
		record.FieldIncomeSources,
	} {
		if len(verr.FieldErrors(path)) == 0 {
			t.Errorf("expected an error at %s", path)
		}
	}
	if diff := cmp.Diff([]string{"W-2 Wages"}, rec.IncomeSources.Labels()); diff != "" {
		t.Fatalf("known sources should survive (-want +got):\n%s", diff)
	}
}

func TestFromFormRoundTripsThroughBind(t *testing.T) {
	posted := url.Values{
		"taxpayer.name":             {"Jane Doe"},
		"filing_status":             {"head_of_household"},
		"dependent_count":           {"1"},
		"dependents.0.name":         {"Tim"},
		"dependents.0.relationship": {"step_child"},
		"dependents.0.dob":          {"2016-08-09"},
		"dependents.1.name":         {"Hidden row"},
		"income_sources":            {"rental_income", "unemployment"},
		"personal_item_sales":       {"unsure"},
		"medical.notes":             {"Orthodontics"},
		"additional_notes":          {"None"},
		"unknown.field.is.ignored":  {"x"},
	}

	values, err := FromForm(posted, form.MustDefault())
	if err != nil {
		t.Fatalf("from form: %v", err)
	}

	if got, _ := values["medical"].(map[string]any); got["claimed"] != false {
		t.Fatalf("absent checkbox must read false, got %#v", got)
	}
	if _, ok := values["unknown"]; ok {
		t.Fatalf("unknown fields must be dropped")
	}
	if rows, _ := values["dependents"].([]any); len(rows) != 2 {
		t.Fatalf("hidden rows should be kept in the value tree, got %#v", values["dependents"])
	}

	rec, err := Bind(values)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if rec.Taxpayer.Name != "Jane Doe" || rec.FilingStatus != record.FilingHeadOfHousehold {
		t.Fatalf("unexpected record %+v", rec)
	}
	if len(rec.Dependents) != 1 || rec.Dependents[0].Relationship != record.RelationshipStepChild {
		t.Fatalf("unexpected dependents %+v", rec.Dependents)
	}
	if rec.Medical != nil {
		t.Fatalf("medical notes without the checkbox must be ignored")
	}
	if diff := cmp.Diff([]string{"Rental Income", "Unemployment"}, rec.IncomeSources.Labels()); diff != "" {
		t.Fatalf("income sources mismatch (-want +got):\n%s", diff)
	}
}
