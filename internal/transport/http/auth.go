package httptransport

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserID is the gin context key carrying the authenticated user id.
const ContextUserID = "user_id"

// NewAuthMiddleware validates bearer tokens signed with the shared secret
// and stores the subject claim as the acting user id. Requests without a
// valid token never reach a handler.
func NewAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			RespondError(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			RespondError(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}

		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			RespondError(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}
		userID, err := strconv.ParseUint(subject, 10, 64)
		if err != nil {
			RespondError(c, http.StatusUnauthorized, "Not authenticated")
			c.Abort()
			return
		}

		c.Set(ContextUserID, uint(userID))
		c.Next()
	}
}

// UserID extracts the authenticated user id placed by the middleware.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
