package asnlookup

//
// ASN lookup using the RIPE NCC prefix-overview API.
//

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/asnfetch/asnfetch/internal/errorx"
	"github.com/asnfetch/asnfetch/internal/httpclientx"
	"github.com/asnfetch/asnfetch/internal/model"
)

// ripeBaseURL is the RIPEstat prefix-overview endpoint.
const ripeBaseURL = "https://stat.ripe.net/data/prefix-overview/data.json"

// ErrMissingResponseData indicates that a response we fetched lacked
// the nested structure we expected to find inside it.
var ErrMissingResponseData = errors.New("asnlookup: response lacks the expected structure")

// RIPEClient resolves ASNs using the RIPE NCC prefix-overview API.
//
// The zero value is valid and uses the real endpoint with a fixed
// 10-second timeout; the fields exist so tests can inject fakes.
type RIPEClient struct {
	// BaseURL is the OPTIONAL endpoint URL override.
	BaseURL string

	// HTTPClient is the OPTIONAL [model.HTTPClient] override.
	HTTPClient model.HTTPClient

	// Logger is the OPTIONAL [model.Logger] to use.
	Logger model.Logger
}

var _ model.ASNResolver = &RIPEClient{}

// ripeResponse is the portion of the prefix-overview response that we
// care about. Data is a pointer because we must distinguish a missing
// "data" object from a present-but-empty one.
type ripeResponse struct {
	Data *ripeData `json:"data"`
}

type ripeData struct {
	ASNs []ripeASN `json:"asns"`
}

type ripeASN struct {
	ASN    uint32 `json:"asn"`
	Holder string `json:"holder"`
}

// LookupASN implements model.ASNResolver.
func (c *RIPEClient) LookupASN(ctx context.Context, ip string) ([]model.ASNInfo, error) {
	URL := c.baseURL() + "?resource=" + url.QueryEscape(ip)

	httpClient := c.httpClient()
	defer httpClient.CloseIdleConnections()

	resp, err := httpclientx.GetJSON[*ripeResponse](ctx, URL, &httpclientx.Config{
		Client:    httpClient,
		Logger:    model.ValidLoggerOrDefault(c.Logger),
		UserAgent: httpUserAgent(),
	})
	if err != nil {
		return nil, err
	}

	// An address announced by no ASN yields "asns": [] in the source
	// JSON, which decodes to a non-nil empty slice. Only an actually
	// missing or null "data" or "asns" is a malformed response.
	if resp == nil || resp.Data == nil || resp.Data.ASNs == nil {
		return nil, errorx.NewParseError(ErrMissingResponseData)
	}

	results := []model.ASNInfo{}
	for _, entry := range resp.Data.ASNs {
		results = append(results, model.ASNInfo{
			ASN:    entry.ASN,
			Holder: entry.Holder,
		})
	}
	return results, nil
}

func (c *RIPEClient) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return ripeBaseURL
}

func (c *RIPEClient) httpClient() model.HTTPClient {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}
