package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/invoicely/internal/usercontext"
)

// UserScoped resolves the acting user and stores it in the request context.
// The X-User-Id header wins; otherwise the configured default user applies.
// Requests without either are rejected, since every invoice is user-scoped.
func (s *Server) UserScoped() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := s.cfg.DefaultUserID
		if header := strings.TrimSpace(c.GetHeader("X-User-Id")); header != "" {
			parsed, err := snowflake.ParseString(header)
			if err != nil {
				AbortWithError(c, ErrUnauthorized)
				return
			}
			userID = int64(parsed)
		}
		if userID == 0 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := usercontext.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
