package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/form"
	"github.com/goliatone/go-intake/pkg/record"
	"github.com/goliatone/go-intake/pkg/render"
)

func TestMapErrorsPlacesMessagesOnControls(t *testing.T) {
	verr := &record.ValidationError{}
	verr.Add(record.FieldTaxpayerName, record.MessageTaxpayerNameRequired, record.ErrTaxpayerNameRequired)
	verr.Add("dependents.2.relationship", "Select a relationship.", record.ErrUnknownOption)
	verr.Add("spouse.ssn", "Not collected here.", nil)
	verr.AddForm("Try again later.", nil)

	mapped := render.MapErrors(form.MustDefault(), verr)

	wantFields := map[string][]string{
		record.FieldTaxpayerName:    {record.MessageTaxpayerNameRequired},
		"dependents.2.relationship": {"Select a relationship."},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{record.MessageTaxpayerNameRequired, "Try again later.", "Not collected here."}
	if diff := cmp.Diff(wantForm, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorsPlainError(t *testing.T) {
	mapped := render.MapErrors(form.MustDefault(), errors.New("  disk full "))
	if mapped.Fields != nil {
		t.Fatalf("expected no field errors, got %v", mapped.Fields)
	}
	if diff := cmp.Diff([]string{"disk full"}, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}

	if got := render.MapErrors(form.MustDefault(), nil); got.Fields != nil || got.Form != nil {
		t.Fatalf("nil error should map to nothing, got %+v", got)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	if diff := cmp.Diff([]string{"First", "Second", "third"}, merged); diff != "" {
		t.Fatalf("merged mismatch (-want +got):\n%s", diff)
	}
}
