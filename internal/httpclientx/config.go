// Package httpclientx contains extensions to read JSON API responses
// over HTTP. Every transport failure, unexpected status code, and
// decoding failure is returned as an [*errorx.ErrWrapper] so that
// callers only ever deal with the stable failure taxonomy.
package httpclientx

import (
	"net/http"

	"github.com/asnfetch/asnfetch/internal/model"
)

// Config contains configuration shared by [GetJSON] and [GetRaw].
//
// The zero value is valid and uses conservative defaults.
type Config struct {
	// Client is the OPTIONAL [model.HTTPClient] to use. We use the
	// standard library's default client when this field is nil. The
	// caller remains responsible for closing idle connections.
	Client model.HTTPClient

	// Logger is the OPTIONAL [model.Logger] to use.
	Logger model.Logger

	// UserAgent is the OPTIONAL User-Agent header value to use.
	UserAgent string
}

func (c *Config) client() model.HTTPClient {
	if c.Client != nil {
		return c.Client
	}
	return http.DefaultClient
}

func (c *Config) logger() model.Logger {
	return model.ValidLoggerOrDefault(c.Logger)
}
