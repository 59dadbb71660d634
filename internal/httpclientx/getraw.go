package httpclientx

//
// getraw.go - GET a raw response body.
//

import (
	"context"
	"io"
	"net/http"

	"github.com/asnfetch/asnfetch/internal/errorx"
)

// maxResponseBodySize is the maximum response body size we are willing
// to read. The JSON documents we fetch are tiny; this bound only exists
// to protect us from a misbehaving server.
const maxResponseBodySize = 1 << 22

// GetRaw sends a GET request and reads the raw response body.
//
// Arguments:
//
// - ctx is the cancellable context;
//
// - URL is the URL to use;
//
// - config contains the config.
//
// A non-2xx response is a failure carrying the status code. Any error
// returned by this function is an [*errorx.ErrWrapper].
func GetRaw(ctx context.Context, URL string, config *Config) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return nil, errorx.NewErrWrapper(errorx.HTTPRoundTripOperation, err)
	}
	if config.UserAgent != "" {
		req.Header.Set("User-Agent", config.UserAgent)
	}

	config.logger().Debugf("httpclientx: GET %s", URL)

	resp, err := config.client().Do(req)
	if err != nil {
		return nil, errorx.NewErrWrapper(errorx.HTTPRoundTripOperation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, errorx.NewHTTPStatusError(errorx.HTTPRoundTripOperation, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, errorx.NewErrWrapper(errorx.HTTPRoundTripOperation, err)
	}

	return data, nil
}
