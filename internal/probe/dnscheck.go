package probe

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"
)

// DNS classes used to refine connection errors in the run log.
const (
	DNSResolves    = "RESOLVES"
	DNSNXDomain    = "NXDOMAIN"
	DNSNoARecord   = "NO_A_RECORD"
	DNSServfail    = "SERVFAIL_or_TIMEOUT"
	DNSInvalidName = "INVALID_NAME"
)

var dnsTimeout = 3 * time.Second

// ClassifyDNS resolves the domain with the OS resolver and returns one of
// the DNS* classes. It is diagnostic only; probe outcomes never depend on it.
func ClassifyDNS(domain string) string {
	domain = strings.TrimSpace(domain)
	if domain == "" || strings.Contains(domain, "://") {
		return DNSInvalidName
	}

	ctx, cancel := context.WithTimeout(context.Background(), dnsTimeout)
	defer cancel()
	r := &net.Resolver{}

	ips, err := r.LookupIP(ctx, "ip", domain)
	if err == nil && len(ips) > 0 {
		return DNSResolves
	}

	notFound := false
	if err != nil {
		var de *net.DNSError
		if errors.As(err, &de) {
			if de.IsTemporary || de.Timeout() {
				return DNSServfail
			}
			notFound = de.IsNotFound
		}
	}

	// A name with NS records but no address records is delegated but empty.
	if ns, nsErr := r.LookupNS(ctx, domain); nsErr == nil && len(ns) > 0 {
		return DNSNoARecord
	}
	if notFound {
		return DNSNXDomain
	}
	return DNSServfail
}

// HostOf pulls the hostname from a URL string, falling back to the raw
// value when it does not parse.
func HostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
