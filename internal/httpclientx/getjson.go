package httpclientx

//
// getjson.go - GET a JSON response.
//

import (
	"context"
	"encoding/json"

	"github.com/asnfetch/asnfetch/internal/errorx"
)

// GetJSON sends a GET request and reads a JSON response.
//
// Arguments:
//
// - ctx is the cancellable context;
//
// - URL is the URL to use;
//
// - config contains the config.
//
// This function either returns an [*errorx.ErrWrapper] or a valid
// Output. A body that does not decode into Output is a parse failure.
func GetJSON[Output any](ctx context.Context, URL string, config *Config) (Output, error) {
	rawrespbody, err := GetRaw(ctx, URL, config)
	if err != nil {
		return zeroValue[Output](), err
	}

	var output Output
	if err := json.Unmarshal(rawrespbody, &output); err != nil {
		return zeroValue[Output](), errorx.NewParseError(err)
	}

	return output, nil
}

// zeroValue is a convenience function to return the zero value.
func zeroValue[T any]() T {
	var value T
	return value
}
