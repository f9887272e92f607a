// Package httpmw holds the cross-cutting gin middleware: request ids,
// per-client rate limiting and prometheus instrumentation.
package httpmw

import (
	"crypto/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const HeaderRequestID = "X-Request-ID"

// RequestID assigns a ULID to every request that does not already carry one
// and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			// MonotonicEntropy は並行安全ではないのでリクエスト毎に作る
			v, err := ulid.New(ulid.Timestamp(time.Now().UTC()), ulid.Monotonic(rand.Reader, 0))
			if err == nil {
				id = v.String()
			}
		}
		if id != "" {
			c.Set(HeaderRequestID, id)
			c.Header(HeaderRequestID, id)
		}
		c.Next()
	}
}
