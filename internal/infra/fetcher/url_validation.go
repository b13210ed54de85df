// Package fetcher retrieves article pages and renders them as markdown.
package fetcher

import (
	"fmt"
	"net"
	"net/url"

	"weekly-aws-mcp/internal/usecase/page"
)

// validateURL validates a URL for security before making an HTTP request.
// It checks the scheme and, when denyPrivateIPs is set, resolves the host
// and rejects loopback, private and link-local addresses (SSRF prevention).
func validateURL(urlStr string, denyPrivateIPs bool) (*url.URL, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("%w: parse error: %v", page.ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", page.ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return nil, fmt.Errorf("%w: empty hostname", page.ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return u, nil
	}

	// IP リテラルは DNS を引かずに判定する
	if ip := net.ParseIP(hostname); ip != nil {
		if isPrivateIP(ip) {
			return nil, fmt.Errorf("%w: address %s", page.ErrPrivateIP, ip.String())
		}
		return u, nil
	}

	ips, err := net.LookupIP(hostname)
	if err != nil {
		return nil, fmt.Errorf("%w: DNS lookup failed for %s: %v", page.ErrInvalidURL, hostname, err)
	}

	for _, ip := range ips {
		if isPrivateIP(ip) {
			return nil, fmt.Errorf("%w: hostname '%s' resolves to private IP %s", page.ErrPrivateIP, hostname, ip.String())
		}
	}

	return u, nil
}

// isPrivateIP checks if an IP address is loopback, private, link-local or unspecified.
//
// Reference:
//   - https://tools.ietf.org/html/rfc1918 (Private IPv4)
//   - https://tools.ietf.org/html/rfc4193 (Private IPv6)
//   - https://tools.ietf.org/html/rfc3927 (Link-local IPv4)
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified()
}
