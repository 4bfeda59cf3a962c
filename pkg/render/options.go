package render

// Banner kinds understood by form renderers.
const (
	BannerSuccess = "success"
	BannerError   = "error"
)

// Banner is a page-level status message shown above the form.
type Banner struct {
	Kind    string
	Message string
}

// RenderOptions describe per-request data that form renderers use without
// mutating the form model.
type RenderOptions struct {
	// Values pre-populates controls using dotted field paths
	// ("dependents.0.name").
	Values map[string]any
	// Errors surfaces field-level validation feedback keyed by field path.
	Errors map[string][]string
	// FormErrors are blocking messages not tied to a single control.
	FormErrors []string
	// Banner reports the outcome of the previous action.
	Banner *Banner
	// TaxYear is shown next to the form title.
	TaxYear string
	// Action is the URL the form posts to. Defaults to the current page.
	Action string
}
