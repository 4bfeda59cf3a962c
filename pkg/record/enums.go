package record

import (
	"fmt"
	"slices"
	"strings"
)

// Option pairs the stable key of an enumerated value with its display label.
// Collectors use keys on the wire and labels on screen.
type Option struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

type enumEntry struct {
	key   string
	label string
}

func lookupEntry(entries []enumEntry, raw string) (int, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	for i, entry := range entries {
		if entry.key == "" {
			continue
		}
		if strings.EqualFold(entry.key, trimmed) || strings.EqualFold(entry.label, trimmed) {
			return i, true
		}
	}
	return 0, false
}

func entryOptions(entries []enumEntry) []Option {
	out := make([]Option, 0, len(entries))
	for _, entry := range entries {
		if entry.key == "" {
			continue
		}
		out = append(out, Option{Key: entry.key, Label: entry.label})
	}
	return out
}

func entryAt(entries []enumEntry, idx int) (enumEntry, bool) {
	if idx < 0 || idx >= len(entries) || entries[idx].key == "" {
		return enumEntry{}, false
	}
	return entries[idx], true
}

// FilingStatus is the closed set of filing statuses. The zero value is Single,
// which is also the form's initial selection.
type FilingStatus uint8

const (
	FilingSingle FilingStatus = iota
	FilingMarriedJoint
	FilingMarriedSeparate
	FilingHeadOfHousehold
	FilingUnsure
)

var filingStatusEntries = []enumEntry{
	FilingSingle:          {"single", "Single"},
	FilingMarriedJoint:    {"married_joint", "Married Filing Jointly"},
	FilingMarriedSeparate: {"married_separate", "Married Filing Separately"},
	FilingHeadOfHousehold: {"head_of_household", "Head of Household"},
	FilingUnsure:          {"unsure", "Unsure"},
}

// Valid reports whether s is a member of the closed set.
func (s FilingStatus) Valid() bool {
	_, ok := entryAt(filingStatusEntries, int(s))
	return ok
}

// Key returns the stable machine key, or "" for out-of-set values.
func (s FilingStatus) Key() string {
	entry, _ := entryAt(filingStatusEntries, int(s))
	return entry.key
}

func (s FilingStatus) String() string {
	entry, ok := entryAt(filingStatusEntries, int(s))
	if !ok {
		return fmt.Sprintf("FilingStatus(%d)", uint8(s))
	}
	return entry.label
}

// MarshalText encodes the stable key.
func (s FilingStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("record: invalid filing status %d", uint8(s))
	}
	return []byte(s.Key()), nil
}

// UnmarshalText accepts a key or a display label.
func (s *FilingStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseFilingStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseFilingStatus resolves a key or label (case-insensitive).
func ParseFilingStatus(raw string) (FilingStatus, error) {
	idx, ok := lookupEntry(filingStatusEntries, raw)
	if !ok {
		return 0, fmt.Errorf("%w: filing status %q", ErrUnknownOption, raw)
	}
	return FilingStatus(idx), nil
}

// AllFilingStatuses lists the set in display order.
func AllFilingStatuses() []FilingStatus {
	return []FilingStatus{FilingSingle, FilingMarriedJoint, FilingMarriedSeparate, FilingHeadOfHousehold, FilingUnsure}
}

// Relationship is the closed set of dependent relationships.
type Relationship uint8

const (
	RelationshipChild Relationship = iota
	RelationshipParent
	RelationshipStepChild
	RelationshipOther
)

var relationshipEntries = []enumEntry{
	RelationshipChild:     {"child", "Child"},
	RelationshipParent:    {"parent", "Parent"},
	RelationshipStepChild: {"step_child", "Step-child"},
	RelationshipOther:     {"other", "Other"},
}

func (r Relationship) Valid() bool {
	_, ok := entryAt(relationshipEntries, int(r))
	return ok
}

func (r Relationship) Key() string {
	entry, _ := entryAt(relationshipEntries, int(r))
	return entry.key
}

func (r Relationship) String() string {
	entry, ok := entryAt(relationshipEntries, int(r))
	if !ok {
		return fmt.Sprintf("Relationship(%d)", uint8(r))
	}
	return entry.label
}

func (r Relationship) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("record: invalid relationship %d", uint8(r))
	}
	return []byte(r.Key()), nil
}

func (r *Relationship) UnmarshalText(text []byte) error {
	parsed, err := ParseRelationship(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func ParseRelationship(raw string) (Relationship, error) {
	idx, ok := lookupEntry(relationshipEntries, raw)
	if !ok {
		return 0, fmt.Errorf("%w: relationship %q", ErrUnknownOption, raw)
	}
	return Relationship(idx), nil
}

func AllRelationships() []Relationship {
	return []Relationship{RelationshipChild, RelationshipParent, RelationshipStepChild, RelationshipOther}
}

// SaleStatus answers whether personal items were sold during the year. The
// zero value is SaleNo.
type SaleStatus uint8

const (
	SaleNo SaleStatus = iota
	SaleAtLoss
	SaleAtGain
	SaleUnsure
)

var saleStatusEntries = []enumEntry{
	SaleNo:     {"no", "No"},
	SaleAtLoss: {"sold_at_loss", "Yes - I sold them for LESS than I originally paid (Non-taxable loss)"},
	SaleAtGain: {"sold_at_gain", "Yes - I sold them for MORE than I paid (Taxable gain)"},
	SaleUnsure: {"unsure", "Unsure"},
}

func (s SaleStatus) Valid() bool {
	_, ok := entryAt(saleStatusEntries, int(s))
	return ok
}

func (s SaleStatus) Key() string {
	entry, _ := entryAt(saleStatusEntries, int(s))
	return entry.key
}

func (s SaleStatus) String() string {
	entry, ok := entryAt(saleStatusEntries, int(s))
	if !ok {
		return fmt.Sprintf("SaleStatus(%d)", uint8(s))
	}
	return entry.label
}

func (s SaleStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("record: invalid sale status %d", uint8(s))
	}
	return []byte(s.Key()), nil
}

func (s *SaleStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseSaleStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func ParseSaleStatus(raw string) (SaleStatus, error) {
	idx, ok := lookupEntry(saleStatusEntries, raw)
	if !ok {
		return 0, fmt.Errorf("%w: sale status %q", ErrUnknownOption, raw)
	}
	return SaleStatus(idx), nil
}

func AllSaleStatuses() []SaleStatus {
	return []SaleStatus{SaleNo, SaleAtLoss, SaleAtGain, SaleUnsure}
}

// IncomeSource tags one selected income category. The zero value is not a
// member of the set.
type IncomeSource uint8

const (
	IncomeW2Wages IncomeSource = iota + 1
	IncomeInterestDividends
	IncomeK1
	IncomeCapitalGains
	IncomeGambling
	IncomeRetirement
	IncomeSocialSecurity
	IncomeSelfEmployment
	IncomeRental
	IncomeUnemployment
)

var incomeSourceEntries = []enumEntry{
	IncomeW2Wages:           {"w2_wages", "W-2 Wages"},
	IncomeInterestDividends: {"interest_dividends", "Interest/Dividends"},
	IncomeK1:                {"k1_income", "K-1 Income (Partnerships/S-Corps)"},
	IncomeCapitalGains:      {"capital_gains", "Capital Gains (Stocks/Crypto)"},
	IncomeGambling:          {"gambling_winnings", "Gambling Winnings (W-2G or Casual)"},
	IncomeRetirement:        {"retirement_distributions", "Retirement/IRA Distributions"},
	IncomeSocialSecurity:    {"social_security", "Social Security"},
	IncomeSelfEmployment:    {"self_employment", "Self-Employment"},
	IncomeRental:            {"rental_income", "Rental Income"},
	IncomeUnemployment:      {"unemployment", "Unemployment"},
}

func (s IncomeSource) Valid() bool {
	_, ok := entryAt(incomeSourceEntries, int(s))
	return ok
}

func (s IncomeSource) Key() string {
	entry, _ := entryAt(incomeSourceEntries, int(s))
	return entry.key
}

func (s IncomeSource) String() string {
	entry, ok := entryAt(incomeSourceEntries, int(s))
	if !ok {
		return fmt.Sprintf("IncomeSource(%d)", uint8(s))
	}
	return entry.label
}

func (s IncomeSource) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("record: invalid income source %d", uint8(s))
	}
	return []byte(s.Key()), nil
}

func (s *IncomeSource) UnmarshalText(text []byte) error {
	parsed, err := ParseIncomeSource(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func ParseIncomeSource(raw string) (IncomeSource, error) {
	idx, ok := lookupEntry(incomeSourceEntries, raw)
	if !ok {
		return 0, fmt.Errorf("%w: income source %q", ErrUnknownOption, raw)
	}
	return IncomeSource(idx), nil
}

func AllIncomeSources() []IncomeSource {
	out := make([]IncomeSource, 0, len(incomeSourceEntries)-1)
	for i := range incomeSourceEntries {
		if s := IncomeSource(i); s.Valid() {
			out = append(out, s)
		}
	}
	return out
}

// Deduction tags one selected deduction or credit. The zero value is not a
// member of the set.
type Deduction uint8

const (
	DeductionIRA Deduction = iota + 1
	DeductionStudentLoanInterest
	DeductionMortgageInterest
	DeductionCharitable
	DeductionChildTaxCredit
	DeductionEnergyCredits
	DeductionHSA
	DeductionGamblingLosses
)

var deductionEntries = []enumEntry{
	DeductionIRA:                 {"ira_contribution", "IRA Contribution"},
	DeductionStudentLoanInterest: {"student_loan_interest", "Student Loan Interest"},
	DeductionMortgageInterest:    {"mortgage_interest", "Mortgage Interest"},
	DeductionCharitable:          {"charitable_giving", "Charitable Giving"},
	DeductionChildTaxCredit:      {"child_tax_credit", "Child Tax Credit"},
	DeductionEnergyCredits:       {"energy_credits", "Energy Credits"},
	DeductionHSA:                 {"hsa_contribution", "HSA Contribution"},
	DeductionGamblingLosses:      {"gambling_losses", "Gambling Losses (only deductible up to amount of winnings)"},
}

func (d Deduction) Valid() bool {
	_, ok := entryAt(deductionEntries, int(d))
	return ok
}

func (d Deduction) Key() string {
	entry, _ := entryAt(deductionEntries, int(d))
	return entry.key
}

func (d Deduction) String() string {
	entry, ok := entryAt(deductionEntries, int(d))
	if !ok {
		return fmt.Sprintf("Deduction(%d)", uint8(d))
	}
	return entry.label
}

func (d Deduction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("record: invalid deduction %d", uint8(d))
	}
	return []byte(d.Key()), nil
}

func (d *Deduction) UnmarshalText(text []byte) error {
	parsed, err := ParseDeduction(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func ParseDeduction(raw string) (Deduction, error) {
	idx, ok := lookupEntry(deductionEntries, raw)
	if !ok {
		return 0, fmt.Errorf("%w: deduction %q", ErrUnknownOption, raw)
	}
	return Deduction(idx), nil
}

func AllDeductions() []Deduction {
	out := make([]Deduction, 0, len(deductionEntries)-1)
	for i := range deductionEntries {
		if d := Deduction(i); d.Valid() {
			out = append(out, d)
		}
	}
	return out
}

// IncomeSources is a multi-select set. Use NewIncomeSources to obtain the
// canonical (deduplicated, catalogue-ordered) form.
type IncomeSources []IncomeSource

// NewIncomeSources normalises the selection into catalogue order.
func NewIncomeSources(values ...IncomeSource) IncomeSources {
	return IncomeSources(normalizeSet(values))
}

// Labels returns display labels of the valid members in catalogue order.
func (s IncomeSources) Labels() []string {
	return setLabels([]IncomeSource(s))
}

// Deductions is a multi-select set of deductions and credits.
type Deductions []Deduction

func NewDeductions(values ...Deduction) Deductions {
	return Deductions(normalizeSet(values))
}

func (s Deductions) Labels() []string {
	return setLabels([]Deduction(s))
}

type member interface {
	~uint8
	Valid() bool
	String() string
}

func normalizeSet[T member](values []T) []T {
	if len(values) == 0 {
		return nil
	}
	out := slices.Clone(values)
	slices.Sort(out)
	return slices.Compact(out)
}

func setLabels[T member](values []T) []string {
	normalized := normalizeSet(values)
	out := make([]string, 0, len(normalized))
	for _, v := range normalized {
		if !v.Valid() {
			continue
		}
		out = append(out, v.String())
	}
	return out
}

// Catalogue names understood by Options.
const (
	CatalogueFilingStatus  = "filing_status"
	CatalogueRelationship  = "relationship"
	CatalogueSaleStatus    = "sale_status"
	CatalogueIncomeSources = "income_sources"
	CatalogueDeductions    = "deductions"
)

// Options returns the option list of a named catalogue so form definitions can
// reference the closed sets without restating them.
func Options(catalogue string) ([]Option, bool) {
	switch strings.TrimSpace(catalogue) {
	case CatalogueFilingStatus:
		return entryOptions(filingStatusEntries), true
	case CatalogueRelationship:
		return entryOptions(relationshipEntries), true
	case CatalogueSaleStatus:
		return entryOptions(saleStatusEntries), true
	case CatalogueIncomeSources:
		return entryOptions(incomeSourceEntries), true
	case CatalogueDeductions:
		return entryOptions(deductionEntries), true
	default:
		return nil, false
	}
}
