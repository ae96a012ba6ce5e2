package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// Headers set by the reverse proxy in front of the API, most specific first.
var forwardedHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// ExtractClientIP returns the visitor address used for reaction fingerprints.
// X-Forwarded-For contributes only its first hop. Invalid values are skipped,
// and an unparseable RemoteAddr yields "" so the caller can still fingerprint
// on the user agent alone.
func ExtractClientIP(c *gin.Context) string {
	for _, h := range forwardedHeaders {
		v := c.GetHeader(h)
		if v == "" {
			continue
		}
		first, _, _ := strings.Cut(v, ",")
		if ip := normalizeIP(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	return normalizeIP(host)
}

// normalizeIP trims and canonicalises an address ("::ffff:1.2.3.4" -> "1.2.3.4").
func normalizeIP(raw string) string {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil {
		return ""
	}
	if v4 := ip.To4(); v4 != nil {
		return v4.String()
	}
	return ip.String()
}
