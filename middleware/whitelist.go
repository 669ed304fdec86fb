package middleware

import (
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DomainWhitelistMiddleware rejects requests whose Host is not listed.
// An entry without a port matches the host on any port.
func DomainWhitelistMiddleware(allowedDomains []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		host := c.Request.Host
		hostname := host
		if h, _, err := net.SplitHostPort(host); err == nil {
			hostname = h
		}

		allowed := false
		for _, domain := range allowedDomains {
			if strings.EqualFold(domain, host) || strings.EqualFold(domain, hostname) {
				allowed = true
				break
			}
		}

		if !allowed {
			log.Printf("Rejected host: host=%s", host)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  http.StatusForbidden,
				"message": "Permission denied",
			})
			return
		}

		c.Next()
	}
}
