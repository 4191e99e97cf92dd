package tui

import (
	"github.com/Veraticus/the-bills-must-flow/internal/service"
	"github.com/Veraticus/the-bills-must-flow/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Service service.InvoiceReviewService
	Theme   themes.Theme
	Width   int
	Height  int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Width:  80,
		Height: 24,
	}
}

// WithService sets the invoice review service.
func WithService(svc service.InvoiceReviewService) Option {
	return func(c *Config) {
		c.Service = svc
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
