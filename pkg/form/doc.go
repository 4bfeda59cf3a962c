// Package form loads collection form definitions.
//
// Definitions are YAML documents listing sections and fields. Enumerated
// fields name a record catalogue instead of spelling out options, so the
// rendered choices always match the closed sets of package record. The
// bundled intake form is available through Default.
package form
