package asnlookup

//
// ASN lookup using the ipapi.co API.
//

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/asnfetch/asnfetch/internal/errorx"
	"github.com/asnfetch/asnfetch/internal/httpclientx"
	"github.com/asnfetch/asnfetch/internal/model"
)

// ipapiBaseURL is the base URL of the ipapi.co API.
const ipapiBaseURL = "https://ipapi.co"

// IPAPIClient resolves ASNs using the ipapi.co API. This data source
// associates exactly one ASN with each address, so a successful lookup
// returns a single-element list.
//
// The zero value is valid and performs unauthenticated requests, which
// the service rate limits more aggressively.
type IPAPIClient struct {
	// APIKey is the OPTIONAL API key. When set, we append it to the
	// request URL as the key query parameter.
	APIKey string

	// BaseURL is the OPTIONAL endpoint URL override.
	BaseURL string

	// HTTPClient is the OPTIONAL [model.HTTPClient] override.
	HTTPClient model.HTTPClient

	// Logger is the OPTIONAL [model.Logger] to use.
	Logger model.Logger
}

var _ model.ASNResolver = &IPAPIClient{}

// ipapiResponse is the portion of the ipapi.co response that we care
// about. The service reports failures in band using the error flag and
// a reason string, with the ASN as "AS"-prefixed text at top level.
type ipapiResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
	ASN    string `json:"asn"`
	Org    string `json:"org"`
	Name   string `json:"name"`
}

// LookupASN implements model.ASNResolver.
func (c *IPAPIClient) LookupASN(ctx context.Context, ip string) ([]model.ASNInfo, error) {
	URL := fmt.Sprintf("%s/%s/json/", c.baseURL(), url.PathEscape(ip))
	if c.APIKey != "" {
		URL += "?key=" + url.QueryEscape(c.APIKey)
	}

	httpClient := c.httpClient()
	defer httpClient.CloseIdleConnections()

	resp, err := httpclientx.GetJSON[*ipapiResponse](ctx, URL, &httpclientx.Config{
		Client:    httpClient,
		Logger:    model.ValidLoggerOrDefault(c.Logger),
		UserAgent: httpUserAgent(),
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errorx.NewParseError(ErrMissingResponseData)
	}

	if resp.Error {
		return nil, errorx.NewAPIError(errorx.HTTPRoundTripOperation, resp.Reason)
	}

	asn, err := parseTextualASN(resp.ASN)
	if err != nil {
		return nil, errorx.NewParseError(err)
	}

	return []model.ASNInfo{{ASN: asn, Holder: c.holderOf(resp)}}, nil
}

// holderOf extracts the holder name from a response. The organization
// field is the usual home of the holder name but some plans expose it
// through the name field instead.
func (c *IPAPIClient) holderOf(resp *ipapiResponse) string {
	if resp.Org != "" {
		return resp.Org
	}
	return resp.Name
}

// errNotNumericASN indicates that a textual ASN did not contain a
// number after stripping the "AS" prefix.
var errNotNumericASN = errors.New("asnlookup: textual ASN is not numeric")

// parseTextualASN normalizes a textual ASN such as "AS15169" to its
// numeric value by stripping the prefix and parsing the remainder.
func parseTextualASN(s string) (uint32, error) {
	value, err := strconv.ParseUint(strings.TrimPrefix(s, "AS"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errNotNumericASN, s)
	}
	return uint32(value), nil
}

func (c *IPAPIClient) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return ipapiBaseURL
}

func (c *IPAPIClient) httpClient() model.HTTPClient {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}
