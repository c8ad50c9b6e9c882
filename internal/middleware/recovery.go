package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 response. Requests under /api get a JSON
// error; everything else is handed to renderPage so the user sees a page
// with a retry action.
func Recovery(renderPage func(c *gin.Context)) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		GetLoggerFromContext(c).Error("Recovered from panic",
			slog.String("panic", fmt.Sprint(recovered)),
			slog.String("stack", string(debug.Stack())),
		)

		if strings.HasPrefix(c.Request.URL.Path, "/api/") || renderPage == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
			return
		}
		renderPage(c)
		c.Abort()
	})
}
