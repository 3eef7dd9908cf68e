package utils

import (
	"net"
	"net/url"
	"strings"
	"sync"
)

var (
	clientOriginsMu sync.RWMutex
	clientOrigins   []string
)

// SetClientOrigins registers the configured front-end origins that should be
// trusted in addition to local/private ones.
func SetClientOrigins(origins []string) {
	clientOriginsMu.Lock()
	defer clientOriginsMu.Unlock()
	clientOrigins = nil
	for _, o := range origins {
		if o = strings.TrimSpace(strings.TrimSuffix(o, "/")); o != "" {
			clientOrigins = append(clientOrigins, o)
		}
	}
}

// IsAllowedOrigin checks whether an Origin header value should be trusted.
// Configured client origins, localhost, private IPs and single-label LAN
// hostnames are allowed; other public origins are blocked.
func IsAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}

	clientOriginsMu.RLock()
	for _, o := range clientOrigins {
		if strings.EqualFold(o, strings.TrimSuffix(origin, "/")) {
			clientOriginsMu.RUnlock()
			return true
		}
	}
	clientOriginsMu.RUnlock()

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	hostname := parsed.Hostname()

	if hostname == "localhost" {
		return true
	}
	if strings.HasSuffix(hostname, ".local") {
		return true
	}
	if !strings.Contains(hostname, ".") {
		return true
	}

	if ip := net.ParseIP(hostname); ip != nil {
		return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast()
	}
	return false
}
