// Package asnlookup implements resolving the autonomous systems that
// announce an IP address by querying a remote data source.
//
// Each data source is a provider implementing [model.ASNResolver]. The
// available providers are:
//
// - [RIPEClient] queries the RIPE NCC prefix-overview API and may
// return zero, one, or multiple autonomous systems;
//
// - [IPAPIClient] queries the ipapi.co API, which associates exactly
// one autonomous system with each address;
//
// - [CymruClient] queries Team Cymru's IP-to-ASN mapping service over
// its DNS interface.
//
// Use [NewResolver] to select a provider by name.
package asnlookup

import (
	"time"

	"github.com/asnfetch/asnfetch/internal/version"
)

// defaultTimeout is the fixed timeout enforced by the transport layer
// on every outbound lookup transaction.
const defaultTimeout = 10 * time.Second

// httpUserAgent is the User-Agent we send to HTTP data sources.
func httpUserAgent() string {
	return "asnfetch/" + version.Version
}
