package asnlookup

//
// ASN lookup using Team Cymru's IP-to-ASN mapping service.
//
// The service is queried over its DNS interface: a TXT query against
// <reversed-ip>.origin.asn.cymru.com (or origin6 for IPv6) returns the
// origin record(s), and a TXT query against AS<n>.asn.cymru.com returns
// the AS description record carrying the holder name.
//

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/asnfetch/asnfetch/internal/errorx"
	"github.com/asnfetch/asnfetch/internal/model"
	"github.com/miekg/dns"
)

const (
	// cymruOriginSuffix is the zone answering IPv4 origin queries.
	cymruOriginSuffix = "origin.asn.cymru.com."

	// cymruOrigin6Suffix is the zone answering IPv6 origin queries.
	cymruOrigin6Suffix = "origin6.asn.cymru.com."

	// cymruASSuffix is the zone answering AS description queries.
	cymruASSuffix = "asn.cymru.com."

	// cymruFallbackServer is the resolver we use when we cannot
	// discover the system resolver.
	cymruFallbackServer = "8.8.8.8:53"
)

// errMalformedRecord indicates that a TXT record did not contain the
// pipe-separated fields we expected.
var errMalformedRecord = errors.New("asnlookup: malformed cymru TXT record")

// CymruClient resolves ASNs using Team Cymru's DNS interface.
//
// The zero value is valid and uses the system resolver, falling back
// to a well known public resolver when it cannot be discovered.
type CymruClient struct {
	// Logger is the OPTIONAL [model.Logger] to use.
	Logger model.Logger

	// ServerAddr is the OPTIONAL "host:port" address of the DNS
	// server to use instead of the system resolver.
	ServerAddr string
}

var _ model.ASNResolver = &CymruClient{}

// LookupASN implements model.ASNResolver.
//
// Unlike the HTTP providers, this lookup issues one DNS query for the
// origin record plus one per discovered ASN for the holder name.
func (c *CymruClient) LookupASN(ctx context.Context, ip string) ([]model.ASNInfo, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return nil, errorx.NewInvalidInputError(ip)
	}

	logger := model.ValidLoggerOrDefault(c.Logger)
	name := cymruOriginName(parsed)
	logger.Debugf("cymru: TXT %s", name)

	records, err := c.queryTXT(ctx, name)
	if err != nil {
		return nil, err
	}

	// NXDOMAIN or an answerless response means no ASN announces
	// this address, which is a successful empty result.
	results := []model.ASNInfo{}
	for _, asn := range collectOriginASNs(records) {
		holder, err := c.lookupHolder(ctx, logger, asn)
		if err != nil {
			return nil, err
		}
		results = append(results, model.ASNInfo{ASN: asn, Holder: holder})
	}
	return results, nil
}

// lookupHolder fetches the AS description record for the given ASN and
// extracts the holder name from it. An ASN without a description record
// yields an empty holder rather than an error.
func (c *CymruClient) lookupHolder(
	ctx context.Context, logger model.Logger, asn uint32) (string, error) {
	name := fmt.Sprintf("AS%d.%s", asn, cymruASSuffix)
	logger.Debugf("cymru: TXT %s", name)

	records, err := c.queryTXT(ctx, name)
	if err != nil {
		return "", err
	}
	for _, record := range records {
		if holder, err := parseASRecord(record); err == nil {
			return holder, nil
		}
	}
	return "", nil
}

// queryTXT issues a TXT query for name and returns the TXT strings in
// the answer. NXDOMAIN yields an empty slice and a nil error; any other
// non-successful response code is a remote-side failure.
func (c *CymruClient) queryTXT(ctx context.Context, name string) ([]string, error) {
	query := new(dns.Msg)
	query.SetQuestion(name, dns.TypeTXT)
	query.RecursionDesired = true

	client := &dns.Client{Timeout: defaultTimeout}
	resp, _, err := client.ExchangeContext(ctx, query, c.serverAddr())
	if err != nil {
		return nil, errorx.NewErrWrapper(errorx.DNSRoundTripOperation, err)
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
		// fallthrough to reading the answer section
	case dns.RcodeNameError:
		return nil, nil
	default:
		return nil, &errorx.ErrWrapper{
			Failure:    errorx.FailureAPI,
			Operation:  errorx.DNSRoundTripOperation,
			WrappedErr: fmt.Errorf("DNS response code: %s", dns.RcodeToString[resp.Rcode]),
		}
	}

	var records []string
	for _, answer := range resp.Answer {
		if txt, ok := answer.(*dns.TXT); ok {
			records = append(records, strings.Join(txt.Txt, ""))
		}
	}
	return records, nil
}

// serverAddr returns the DNS server address to use: the configured
// override, the first system resolver, or the fallback, in this order.
func (c *CymruClient) serverAddr() string {
	if c.ServerAddr != "" {
		return c.ServerAddr
	}
	config, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err == nil && len(config.Servers) > 0 {
		return net.JoinHostPort(config.Servers[0], config.Port)
	}
	return cymruFallbackServer
}

// cymruOriginName maps an IP address to the DNS name answering the
// origin query for it, e.g. 8.8.8.8 to 8.8.8.8.origin.asn.cymru.com.
// (octets reversed) and IPv6 addresses to their reversed-nibble form
// under origin6.asn.cymru.com.
func cymruOriginName(ip net.IP) string {
	if v4 := ip.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.%d.%s", v4[3], v4[2], v4[1], v4[0], cymruOriginSuffix)
	}
	v6 := ip.To16()
	var sb strings.Builder
	for i := len(v6) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%x.%x.", v6[i]&0xf, v6[i]>>4)
	}
	return sb.String() + cymruOrigin6Suffix
}

// collectOriginASNs extracts the ASNs from the given origin records,
// preserving order and skipping duplicates. An origin record looks like
//
//	15169 | 8.8.8.0/24 | US | arin | 1992-12-01
//
// and its first field may list multiple space-separated ASNs when the
// prefix is announced by more than one autonomous system. Records we
// cannot parse are skipped.
func collectOriginASNs(records []string) []uint32 {
	var asns []uint32
	seen := make(map[uint32]bool)
	for _, record := range records {
		for _, asn := range parseOriginRecord(record) {
			if !seen[asn] {
				seen[asn] = true
				asns = append(asns, asn)
			}
		}
	}
	return asns
}

// parseOriginRecord parses the ASNs out of a single origin record.
func parseOriginRecord(record string) []uint32 {
	fields := strings.Split(record, "|")
	if len(fields) < 2 {
		return nil
	}
	var asns []uint32
	for _, token := range strings.Fields(fields[0]) {
		value, err := strconv.ParseUint(token, 10, 32)
		if err != nil {
			continue
		}
		asns = append(asns, uint32(value))
	}
	return asns
}

// parseASRecord extracts the holder name from an AS description
// record, which looks like
//
//	15169 | US | arin | 2000-03-30 | GOOGLE, US
//
// with the holder name in the fifth field.
func parseASRecord(record string) (string, error) {
	fields := strings.Split(record, "|")
	if len(fields) != 5 {
		return "", fmt.Errorf("%w: %q", errMalformedRecord, record)
	}
	return strings.TrimSpace(fields[4]), nil
}
