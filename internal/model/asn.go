package model

//
// ASN lookup definitions.
//

import "context"

// ASNInfo contains information about an autonomous system announcing
// the prefix that contains a given IP address. A prefix may be announced
// by more than one autonomous system, hence lookups return a list.
type ASNInfo struct {
	// ASN is the autonomous system number.
	ASN uint32

	// Holder is the name of the organization holding the ASN.
	Holder string
}

// ASNResolver resolves the autonomous systems announcing an IP address
// by querying a remote data source.
//
// Implementations issue a single synchronous network transaction per
// call, honour the given context, and never mutate local state. An IP
// address announced by no autonomous system yields an empty list and
// a nil error, which callers must not conflate with failure.
type ASNResolver interface {
	// LookupASN maps the given textual IPv4 or IPv6 address to the
	// list of autonomous systems announcing it, preserving the order
	// in which the remote data source returned them.
	LookupASN(ctx context.Context, ip string) ([]ASNInfo, error)
}
