// Package document renders an intake record into the client intake summary
// PDF.
//
// Rendering happens in two steps. BuildLayout is a pure function that arranges
// the sanitized record into five fixed sections (personal information,
// dependents, income, deductions and credits, additional notes); the PDF
// painter then draws the layout with a repeated page header, shaded section
// bars and two-line label/value field units, breaking pages automatically at
// the configured bottom margin.
//
// Renderer.Render refuses records that fail validation and reports any
// serialization failure as a *GenerationError.
package document
