package github

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"opavm/internal/fault"
)

// friendlyTransportError maps request-level failures (no HTTP response)
// into actionable categories. This mapping is the main diagnostic
// surface users see when GitHub is unreachable.
func friendlyTransportError(err error) error {
	if strings.Contains(err.Error(), "proxyconnect") {
		return fault.Wrap(fault.KindLookup,
			"Failed to query GitHub releases.",
			"Proxy error. Check HTTP_PROXY/HTTPS_PROXY or corporate proxy settings.", err)
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	if errors.As(err, &dnsErr) || errors.As(err, &opErr) {
		return fault.Wrap(fault.KindLookup,
			"Failed to query GitHub releases.",
			"Network connection failed. Check internet connectivity, DNS, firewall, or VPN.", err)
	}

	return fault.Wrap(fault.KindLookup,
		"Failed to query GitHub releases.",
		"Check network connectivity, proxy settings, or GitHub availability.", err)
}

// friendlyStatusError maps error status codes into actionable
// categories. The rate-limit case is distinguished from plain 403 by the
// zeroed x-ratelimit-remaining header GitHub sends alongside it.
func friendlyStatusError(resp *http.Response) error {
	status := resp.StatusCode

	if status == http.StatusForbidden && resp.Header.Get("x-ratelimit-remaining") == "0" {
		return fault.New(fault.KindLookup,
			"GitHub API rate limit exceeded.",
			"Set "+EnvToken+" or retry after the rate limit resets.")
	}
	if status == http.StatusNotFound {
		return fault.New(fault.KindLookup,
			"Requested release was not found.",
			"Check version tag and access permissions.")
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return fault.New(fault.KindLookup,
			"GitHub request was unauthorized.",
			"Check "+EnvToken+" and repository access.")
	}
	return fault.New(fault.KindLookup,
		"Failed to query GitHub releases.",
		"GitHub API responded with HTTP "+strconv.Itoa(status)+".")
}
