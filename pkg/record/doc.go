// Package record defines the intake record produced by a collection session
// and consumed by the document renderer.
//
// Enumerated answers (filing status, relationships, income sources, sale
// status, deductions) are closed sets: each has a stable key used on the wire,
// a display label, and Parse/All helpers. Collectors obtain option lists via
// Options so the form can never offer a value the record cannot hold.
//
// Validate enforces the only hard requirement (a taxpayer name) plus the
// dependents bound; everything else is optional and normalised later by the
// sanitizer.
package record
