package middleware

import (
	"net/http"

	"rentvehicle/models"
	"rentvehicle/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware authenticates the request from its cookies. The access
// token must validate and its session record must still exist — a revoked
// session fails even with a fresh token. When optional is true an
// unauthenticated request passes through without identity in context.
func AuthMiddleware(optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := utils.AccessTokenFromRequest(c)
		if tokenString == "" {
			if optional {
				c.Next()
				return
			}
			abortUnauthenticated(c)
			return
		}

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			if optional {
				c.Next()
				return
			}
			abortUnauthenticated(c)
			return
		}

		// The session record is the revocation authority.
		record, err := utils.GetSessionRecord(utils.GetAuthCacheClient(), claims.SessionID)
		if err != nil || record == nil || record.UserID != claims.UserID {
			if optional {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.Response{
				Code:    utils.ErrSessionExpired.Code,
				Message: utils.ErrSessionExpired.Message,
			})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("sessionID", claims.SessionID)
		c.Next()
	}
}

// AdminMiddleware gates admin routes. Runs after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		if role != string(models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.Response{
				Code:    utils.ErrAccessDenied.Code,
				Message: utils.ErrAccessDenied.Message,
			})
			return
		}
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.Response{
		Code:    utils.ErrUnauthenticated.Code,
		Message: utils.ErrUnauthenticated.Message,
	})
}
