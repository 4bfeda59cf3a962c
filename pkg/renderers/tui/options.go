package tui

import "io"

// Theme captures optional prefixes the collector applies to printed
// messages. Keep minimal to avoid coupling collector logic to ANSI specifics.
type Theme struct {
	SectionPrefix string
	InfoPrefix    string
	ErrorPrefix   string
}

// DefaultTheme is applied when no theme is configured.
var DefaultTheme = Theme{
	SectionPrefix: "== ",
	InfoPrefix:    "",
	ErrorPrefix:   "! ",
}

// Option configures the Collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver used by the collector.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithOutput redirects informational messages of the default survey driver.
func WithOutput(w io.Writer) Option {
	return func(c *Collector) {
		if w != nil {
			c.out = w
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(c *Collector) {
		c.theme = theme
	}
}
