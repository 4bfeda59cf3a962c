package document

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-intake/pkg/record"
)

// Fixed document text.
const (
	Title              = "CLIENT INTAKE SUMMARY"
	NoDependents       = "No dependents listed."
	NoneSelected       = "None selected"
	NoAdditionalNotes  = "No additional notes."
	dependentDOBAbsent = "N/A"
)

// Section titles in render order.
const (
	SectionPersonal   = "1. PERSONAL INFORMATION"
	SectionDependents = "2. DEPENDENTS"
	SectionIncome     = "3. INCOME"
	SectionDeductions = "4. DEDUCTIONS & CREDITS"
	SectionNotes      = "5. ADDITIONAL NOTES"
)

// Field labels.
const (
	LabelTaxpayerName  = "Taxpayer Name"
	LabelTaxpayerDOB   = "Taxpayer DOB"
	LabelSpouseName    = "Spouse Name"
	LabelSpouseDOB     = "Spouse DOB"
	LabelAddress       = "Address"
	LabelContact       = "Contact"
	LabelFilingStatus  = "Filing Status"
	LabelIncomeSources = "General Income Sources"
	LabelPropertySales = "Personal Property Sales"
	LabelDeductions    = "Deductions Selected"
	LabelMedical       = "Significant Medical Expenses"
)

// BlockKind discriminates the drawable units of a section.
type BlockKind int

const (
	// BlockField is a label line followed by a wrapped value line.
	BlockField BlockKind = iota
	// BlockItem is a bulleted line (one per dependent).
	BlockItem
	// BlockText is a single plain line or paragraph.
	BlockText
)

// Block is one drawable unit. Label and Value are already sanitized.
type Block struct {
	Kind  BlockKind
	Label string
	Value string
}

// Section is one of the five fixed groupings.
type Section struct {
	Title  string
	Blocks []Block
}

// Field returns the value of the field block labelled label.
func (s Section) Field(label string) (string, bool) {
	for _, block := range s.Blocks {
		if block.Kind == BlockField && block.Label == label {
			return block.Value, true
		}
	}
	return "", false
}

// Items returns the bulleted lines in order.
func (s Section) Items() []string {
	var out []string
	for _, block := range s.Blocks {
		if block.Kind == BlockItem {
			out = append(out, block.Value)
		}
	}
	return out
}

// Texts returns the plain lines in order.
func (s Section) Texts() []string {
	var out []string
	for _, block := range s.Blocks {
		if block.Kind == BlockText {
			out = append(out, block.Value)
		}
	}
	return out
}

// Layout is the ordered, sanitized content of a summary document.
type Layout struct {
	Title    string
	Subtitle string
	Sections []Section
}

// Section looks a section up by title.
func (l Layout) Section(title string) (Section, bool) {
	for _, section := range l.Sections {
		if section.Title == title {
			return section, true
		}
	}
	return Section{}, false
}

// BuildLayout arranges rec into the five fixed sections. It is a pure function
// of the record, the sanitizer and the options' tax year and clock.
func BuildLayout(rec record.IntakeRecord, opts Options) Layout {
	opts = opts.withDefaults()
	clean := opts.Sanitizer

	field := func(label, value string) Block {
		return Block{Kind: BlockField, Label: clean(label), Value: clean(value)}
	}

	personal := Section{Title: SectionPersonal, Blocks: []Block{
		field(LabelTaxpayerName, rec.Taxpayer.Name),
		field(LabelTaxpayerDOB, rec.Taxpayer.DateOfBirth.String()),
		field(LabelSpouseName, rec.Spouse.Name),
		field(LabelSpouseDOB, rec.Spouse.DateOfBirth.String()),
		field(LabelAddress, collapseLines(rec.Address)),
		field(LabelContact, fmt.Sprintf("Ph: %s / Email: %s", rec.Phone, rec.Email)),
		field(LabelFilingStatus, rec.FilingStatus.String()),
	}}

	dependents := Section{Title: SectionDependents}
	if len(rec.Dependents) == 0 {
		dependents.Blocks = append(dependents.Blocks, Block{Kind: BlockText, Value: NoDependents})
	}
	for _, dep := range rec.Dependents {
		dependents.Blocks = append(dependents.Blocks, Block{Kind: BlockItem, Value: clean(DependentLine(dep))})
	}

	income := Section{Title: SectionIncome, Blocks: []Block{
		field(LabelIncomeSources, joinOrNone(rec.IncomeSources.Labels())),
		field(LabelPropertySales, rec.PersonalItemSales.String()),
	}}

	deductions := Section{Title: SectionDeductions, Blocks: []Block{
		field(LabelDeductions, joinOrNone(rec.Deductions.Labels())),
	}}
	if summary, ok := rec.Medical.Summary(); ok {
		deductions.Blocks = append(deductions.Blocks, field(LabelMedical, summary))
	}

	notes := NoAdditionalNotes
	if rec.AdditionalNotes != "" {
		notes = clean(rec.AdditionalNotes)
	}

	return Layout{
		Title:    Title,
		Subtitle: fmt.Sprintf("Tax Year: %s | Generated: %s", opts.TaxYear, opts.Clock().Format(record.DateLayout)),
		Sections: []Section{
			personal,
			dependents,
			income,
			deductions,
			{Title: SectionNotes, Blocks: []Block{{Kind: BlockText, Value: notes}}},
		},
	}
}

// DependentLine formats one dependent before sanitization.
func DependentLine(dep record.Dependent) string {
	dob := dep.DateOfBirth.String()
	if dob == "" {
		dob = dependentDOBAbsent
	}
	return fmt.Sprintf("%s (%s) | DOB: %s", dep.Name, dep.Relationship, dob)
}

func collapseLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", ", ")
}

func joinOrNone(labels []string) string {
	if len(labels) == 0 {
		return NoneSelected
	}
	return strings.Join(labels, ", ")
}
