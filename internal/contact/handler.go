package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves the relay over gin. Register it for every method so
// non-POST requests get a 405 from here rather than a router 404.
func Handler(relay *Relay) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			res := MethodNotAllowed()
			c.JSON(res.Status, res.Body)
			return
		}

		// An unreadable body carries no fields; Submit rejects it as such.
		var s Submission
		if err := c.ShouldBindJSON(&s); err != nil {
			s = Submission{}
		}

		res := relay.Submit(c.Request.Context(), s)
		c.JSON(res.Status, res.Body)
	}
}
