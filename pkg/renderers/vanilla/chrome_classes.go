package vanilla

// ChromeClass is a typed identifier for the CSS classes the page templates
// emit. intake.css styles these names.
type ChromeClass string

const (
	ClassForm    ChromeClass = "intake-form"
	ClassHeader  ChromeClass = "intake-header"
	ClassNotice  ChromeClass = "intake-notice"
	ClassSection ChromeClass = "intake-section"
	ClassField   ChromeClass = "intake-field"
	ClassRow     ChromeClass = "intake-row"
	ClassActions ChromeClass = "intake-actions"
	ClassErrors  ChromeClass = "intake-errors"
	ClassBanner  ChromeClass = "intake-banner"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"form":    string(ClassForm),
		"header":  string(ClassHeader),
		"notice":  string(ClassNotice),
		"section": string(ClassSection),
		"field":   string(ClassField),
		"row":     string(ClassRow),
		"actions": string(ClassActions),
		"errors":  string(ClassErrors),
		"banner":  string(ClassBanner),
	}
}
