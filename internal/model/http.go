package model

//
// Common HTTP definitions.
//

import "net/http"

// HTTPClient is the interface of an HTTP client compatible
// with the standard library's [*http.Client].
type HTTPClient interface {
	// Do should work like http.Client.Do.
	Do(req *http.Request) (*http.Response, error)

	// CloseIdleConnections closes idle connections.
	CloseIdleConnections()
}

var _ HTTPClient = &http.Client{}
