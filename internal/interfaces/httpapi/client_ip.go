package httpapi

import (
	"net"
	"net/http"
	"strings"
)

// resolveClientIP returns the socket peer address unless trustedHeader names a
// header set by the proxy in front of the service. For a list header such as
// X-Forwarded-For the rightmost entry is used, since that is the one the proxy
// appended.
func resolveClientIP(r *http.Request, trustedHeader string) string {
	if trustedHeader != "" {
		if ip := normalizeIP(lastListEntry(r.Header.Values(trustedHeader))); ip != "" {
			return ip
		}
	}
	return normalizeIP(r.RemoteAddr)
}

func lastListEntry(values []string) string {
	if len(values) == 0 {
		return ""
	}
	last := values[len(values)-1]
	if idx := strings.LastIndex(last, ","); idx >= 0 {
		last = last[idx+1:]
	}
	return last
}

func normalizeIP(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	if host, _, err := net.SplitHostPort(value); err == nil {
		value = strings.TrimSpace(host)
	}

	parsed := net.ParseIP(value)
	if parsed == nil {
		return ""
	}
	return parsed.String()
}
