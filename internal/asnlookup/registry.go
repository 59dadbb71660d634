package asnlookup

//
// Registry mapping provider names to constructors.
//

import (
	"errors"

	"github.com/asnfetch/asnfetch/internal/model"
)

// The names you can pass to [NewResolver].
const (
	// ProviderRIPE selects the RIPE NCC data source.
	ProviderRIPE = "ripe"

	// ProviderIPAPI selects the ipapi.co data source.
	ProviderIPAPI = "ipapi"

	// ProviderCymru selects the Team Cymru data source.
	ProviderCymru = "cymru"
)

// DefaultProvider is the provider we use when the user does not
// express a preference.
const DefaultProvider = ProviderRIPE

// ErrNoSuchProvider indicates that you asked for a nonexisting provider.
var ErrNoSuchProvider = errors.New("asnlookup: no such provider")

// ClientConfig contains configuration shared by every provider.
//
// The zero value is valid and corresponds to unauthenticated lookups
// without any logging.
type ClientConfig struct {
	// APIKey is the OPTIONAL API key used by providers that
	// support authenticated lookups.
	APIKey string

	// Logger is the OPTIONAL [model.Logger] to use.
	Logger model.Logger
}

// Providers returns the names of the available providers in the order
// we document them.
func Providers() []string {
	return []string{ProviderRIPE, ProviderIPAPI, ProviderCymru}
}

// NewResolver constructs the [model.ASNResolver] with the given name.
// Returns [ErrNoSuchProvider] when no provider has the given name.
func NewResolver(name string, config *ClientConfig) (model.ASNResolver, error) {
	switch name {
	case ProviderRIPE:
		return &RIPEClient{Logger: config.Logger}, nil
	case ProviderIPAPI:
		return &IPAPIClient{APIKey: config.APIKey, Logger: config.Logger}, nil
	case ProviderCymru:
		return &CymruClient{Logger: config.Logger}, nil
	default:
		return nil, ErrNoSuchProvider
	}
}
