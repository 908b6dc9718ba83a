package starter

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// baseURL resolves the externally reachable server URL: the request's own
// scheme and Host, then the configured public URL, then loopback.
func (s *Starter) baseURL(r *http.Request) string {
	if r.Host != "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}
		return scheme + "://" + r.Host
	}
	if s.publicURL != "" {
		return strings.TrimRight(s.publicURL, "/")
	}
	port := s.port
	if port == 0 {
		port = 3000
	}
	return fmt.Sprintf("http://127.0.0.1:%d", port)
}

func a2aEndpoint(base string, id uuid.UUID) string {
	return base + "/api/plugins/" + Name + "/a2a-card?agentId=" + url.QueryEscape(id.String())
}

func startURL(base string, id uuid.UUID) string {
	return base + "/api/agents/" + id.String() + "/start"
}
