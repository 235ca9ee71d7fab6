package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avagulans/inkpost/internal/common"
)

// setAuthCookie stores the token in an httpOnly cookie whose lifetime matches
// the token's own expiry window.
func (s *HTTPServer) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.AuthCookieName, token, int(s.cookieTTL.Seconds()), "/", "", true, true)
}

func (s *HTTPServer) clearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.AuthCookieName, "", -1, "/", "", true, true)
}
