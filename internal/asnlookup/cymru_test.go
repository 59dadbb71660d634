package asnlookup

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/asnfetch/asnfetch/internal/errorx"
	"github.com/asnfetch/asnfetch/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/miekg/dns"
)

// newFakeDNSServer starts a DNS server on localhost answering TXT
// queries from the given name-to-records map and returning NXDOMAIN
// for every other name. The caller must invoke the returned shutdown
// function when done.
func newFakeDNSServer(t *testing.T, records map[string][]string) (string, func()) {
	pconn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	handler := dns.HandlerFunc(func(w dns.ResponseWriter, req *dns.Msg) {
		resp := new(dns.Msg)
		resp.SetReply(req)
		name := req.Question[0].Name
		values, found := records[name]
		if !found {
			resp.Rcode = dns.RcodeNameError
		}
		for _, value := range values {
			resp.Answer = append(resp.Answer, &dns.TXT{
				Hdr: dns.RR_Header{
					Name:   name,
					Rrtype: dns.TypeTXT,
					Class:  dns.ClassINET,
				},
				Txt: []string{value},
			})
		}
		w.WriteMsg(resp)
	})
	server := &dns.Server{PacketConn: pconn, Handler: handler}
	go server.ActivateAndServe()
	return pconn.LocalAddr().String(), func() { server.Shutdown() }
}

func TestCymruClientLookupASN(t *testing.T) {
	t.Run("on success", func(t *testing.T) {
		addr, shutdown := newFakeDNSServer(t, map[string][]string{
			"8.8.8.8.origin.asn.cymru.com.": {
				"15169 | 8.8.8.0/24 | US | arin | 1992-12-01",
			},
			"AS15169.asn.cymru.com.": {
				"15169 | US | arin | 2000-03-30 | GOOGLE, US",
			},
		})
		defer shutdown()

		client := &CymruClient{ServerAddr: addr}
		results, err := client.LookupASN(context.Background(), "8.8.8.8")
		if err != nil {
			t.Fatal(err)
		}

		expect := []model.ASNInfo{{ASN: 15169, Holder: "GOOGLE, US"}}
		if diff := cmp.Diff(expect, results); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with a multi-origin prefix", func(t *testing.T) {
		addr, shutdown := newFakeDNSServer(t, map[string][]string{
			"1.2.0.192.origin.asn.cymru.com.": {
				"64500 64501 | 192.0.2.0/24 | US | arin | 2001-06-01",
			},
			"AS64500.asn.cymru.com.": {
				"64500 | US | arin | 2001-06-01 | EXAMPLE-ONE, US",
			},
			"AS64501.asn.cymru.com.": {
				"64501 | US | arin | 2001-06-01 | EXAMPLE-TWO, US",
			},
		})
		defer shutdown()

		client := &CymruClient{ServerAddr: addr}
		results, err := client.LookupASN(context.Background(), "192.0.2.1")
		if err != nil {
			t.Fatal(err)
		}

		expect := []model.ASNInfo{
			{ASN: 64500, Holder: "EXAMPLE-ONE, US"},
			{ASN: 64501, Holder: "EXAMPLE-TWO, US"},
		}
		if diff := cmp.Diff(expect, results); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with no announcing ASN", func(t *testing.T) {
		addr, shutdown := newFakeDNSServer(t, map[string][]string{})
		defer shutdown()

		client := &CymruClient{ServerAddr: addr}
		results, err := client.LookupASN(context.Background(), "203.0.113.7")

		// NXDOMAIN means not announced, which is a success
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]model.ASNInfo{}, results); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with an ASN lacking a description record", func(t *testing.T) {
		addr, shutdown := newFakeDNSServer(t, map[string][]string{
			"8.8.8.8.origin.asn.cymru.com.": {
				"15169 | 8.8.8.0/24 | US | arin | 1992-12-01",
			},
		})
		defer shutdown()

		client := &CymruClient{ServerAddr: addr}
		results, err := client.LookupASN(context.Background(), "8.8.8.8")
		if err != nil {
			t.Fatal(err)
		}

		expect := []model.ASNInfo{{ASN: 15169, Holder: ""}}
		if diff := cmp.Diff(expect, results); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("with an invalid IP address", func(t *testing.T) {
		client := &CymruClient{}
		results, err := client.LookupASN(context.Background(), "not-an-ip")

		var wrapper *errorx.ErrWrapper
		if !errors.As(err, &wrapper) {
			t.Fatal("expected an ErrWrapper", err)
		}
		if wrapper.Failure != errorx.FailureInvalidInput {
			t.Fatal("unexpected failure", wrapper.Failure)
		}
		if results != nil {
			t.Fatal("expected nil results")
		}
	})
}

func TestCymruOriginName(t *testing.T) {
	t.Run("for IPv4", func(t *testing.T) {
		name := cymruOriginName(net.ParseIP("8.8.4.4"))
		if name != "4.4.8.8.origin.asn.cymru.com." {
			t.Fatal("unexpected name", name)
		}
	})
	t.Run("for IPv6", func(t *testing.T) {
		name := cymruOriginName(net.ParseIP("2001:4860:4860::8888"))
		expect := "8.8.8.8.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.6.8.4.0.6.8.4.1.0.0.2." +
			"origin6.asn.cymru.com."
		if name != expect {
			t.Fatal("unexpected name", name)
		}
	})
}

func TestParseOriginRecord(t *testing.T) {
	t.Run("with a single ASN", func(t *testing.T) {
		asns := parseOriginRecord("15169 | 8.8.8.0/24 | US | arin | 1992-12-01")
		if diff := cmp.Diff([]uint32{15169}, asns); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("with multiple ASNs", func(t *testing.T) {
		asns := parseOriginRecord("64500 64501 | 192.0.2.0/24 | US | arin | 2001-06-01")
		if diff := cmp.Diff([]uint32{64500, 64501}, asns); diff != "" {
			t.Fatal(diff)
		}
	})
	t.Run("with a record lacking pipes", func(t *testing.T) {
		if asns := parseOriginRecord("not a cymru record"); asns != nil {
			t.Fatal("expected nil", asns)
		}
	})
	t.Run("with the empty string", func(t *testing.T) {
		if asns := parseOriginRecord(""); asns != nil {
			t.Fatal("expected nil", asns)
		}
	})
}

func TestCollectOriginASNs(t *testing.T) {
	asns := collectOriginASNs([]string{
		"15169 | 8.8.8.0/24 | US | arin | 1992-12-01",
		"15169 36040 | 8.8.8.0/24 | US | arin | 1992-12-01",
	})
	// duplicates across records are collapsed, order preserved
	if diff := cmp.Diff([]uint32{15169, 36040}, asns); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseASRecord(t *testing.T) {
	t.Run("with a well formed record", func(t *testing.T) {
		holder, err := parseASRecord("15169 | US | arin | 2000-03-30 | GOOGLE, US")
		if err != nil {
			t.Fatal(err)
		}
		if holder != "GOOGLE, US" {
			t.Fatal("unexpected holder", holder)
		}
	})
	t.Run("with too few fields", func(t *testing.T) {
		if _, err := parseASRecord("15169 | US"); !errors.Is(err, errMalformedRecord) {
			t.Fatal("unexpected error", err)
		}
	})
	t.Run("with the empty string", func(t *testing.T) {
		if _, err := parseASRecord(""); !errors.Is(err, errMalformedRecord) {
			t.Fatal("unexpected error", err)
		}
	})
}
