package middleware

import "github.com/gin-gonic/gin"

// contextKey is used for values stored in both the Gin context and the
// request context. Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	subjectKey   = contextKey("subject")
)

// GetSubjectFromContext retrieves the authenticated token subject.
// It returns the subject and a boolean indicating if it was found.
func GetSubjectFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(subjectKey)); exists {
		subject, ok := v.(string)
		return subject, ok
	}
	// check in the request context as well
	if v, ok := c.Request.Context().Value(subjectKey).(string); ok {
		return v, true
	}
	return "", false
}
