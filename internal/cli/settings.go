package cli

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/prefs"
)

// Settings prints the stored preferences, falling back to defaults for
// anything never set.
func (a *App) Settings(ctx context.Context) error {
	all, err := a.prefsRepo.List(ctx)
	if err != nil {
		printlnFn("Cannot read settings:", err.Error())
		return nil
	}

	theme := all[prefs.KeyTheme]
	if theme == "" {
		theme = prefs.DefaultTheme
	}
	currency := all[prefs.KeyCurrency]
	if currency == "" {
		currency = prefs.DefaultCurrency
	}

	printlnFn("theme:", theme)
	printlnFn("currency:", currency)
	return nil
}

// SetTheme stores the display theme; only light and dark are known.
func (a *App) SetTheme(ctx context.Context, value string) error {
	if value != "light" && value != "dark" {
		printlnFn("Usage: theme <light|dark>")
		return nil
	}
	if err := a.prefsRepo.Set(ctx, prefs.KeyTheme, value); err != nil {
		printlnFn("Cannot save theme:", err.Error())
		return nil
	}
	printlnFn("Theme set to", value)
	return nil
}

// SetCurrency stores the display currency code.
func (a *App) SetCurrency(ctx context.Context, value string) error {
	if value == "" {
		printlnFn("Usage: currency <code>")
		return nil
	}
	if err := a.prefsRepo.Set(ctx, prefs.KeyCurrency, value); err != nil {
		printlnFn("Cannot save currency:", err.Error())
		return nil
	}
	printlnFn("Currency set to", value)
	return nil
}
