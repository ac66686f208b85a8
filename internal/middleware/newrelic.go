package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
)

// RideAttributes decorates the New Relic transaction started by nrgin with the
// ride ID and request ID, and reports handler errors. Without an active
// transaction it does nothing.
func RideAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		txn := nrgin.Transaction(c)
		if txn == nil {
			return
		}
		if id := c.Param("id"); id != "" {
			txn.AddAttribute("ride_id", id)
		}
		if reqID := GetRequestID(c); reqID != "" {
			txn.AddAttribute("request_id", reqID)
		}
		for _, err := range c.Errors {
			txn.NoticeError(err.Err)
		}
	}
}
