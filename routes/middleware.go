package routes

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AllowListMiddleware rejects any request whose remote IP falls outside
// cidr, the Go port of original_source's is_client_allowed (there a
// hardcoded 192.168.1.0/24 bit-mask check; here a configurable CIDR via
// net.ParseCIDR).
func AllowListMiddleware(cidr string) (gin.HandlerFunc, error) {
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil {
			host = c.Request.RemoteAddr
		}
		ip := net.ParseIP(host)
		if ip == nil || !ipNet.Contains(ip) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "FORBIDDEN", "message": "client ip not in allowed range"})
			return
		}
		c.Next()
	}, nil
}
