package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/didip/tollbooth"
	"github.com/didip/tollbooth/limiter"
	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware allows maxRequests per minute per client IP.
// A non-positive maxRequests disables limiting.
func RateLimitMiddleware(maxRequests float64) gin.HandlerFunc {
	if maxRequests <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	perSecond := maxRequests / 60.0
	lmt := tollbooth.NewLimiter(perSecond, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})

	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})

	return func(c *gin.Context) {
		httpError := tollbooth.LimitByRequest(lmt, c.Writer, c.Request)
		if httpError != nil {
			log.Printf("Rate limited: ip=%s", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, Message{
				Status: "Request Failed",
				Body:   "The converter is at capacity, try again later.",
			})
			return
		}
		c.Next()
	}
}

type Message struct {
	Status string `json:"status"`
	Body   string `json:"body"`
}
