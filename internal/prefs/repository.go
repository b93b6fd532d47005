// Package prefs stores small per-device preferences (theme, display
// currency) in the local database.
package prefs

import "context"

// Well-known preference keys.
const (
	KeyTheme    = "theme"
	KeyCurrency = "currency"
)

// Defaults applied when a preference has never been set.
const (
	DefaultTheme    = "light"
	DefaultCurrency = "USD"
)

type Repository interface {
	// Get returns the stored value for key, or the empty string when unset.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
