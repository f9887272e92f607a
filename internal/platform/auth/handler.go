package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"device-loans-backend/internal/platform/web"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// RegisterRoutes mounts POST /auth/login.
func RegisterRoutes(r gin.IRouter, svc *Service) {
	r.POST("/auth/login", func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Fail(c, http.StatusBadRequest, "InvalidArgument", "username and password are required", nil)
			return
		}
		token, err := svc.Login(req.Username, req.Password)
		if err != nil {
			web.Fail(c, http.StatusUnauthorized, "Unauthorized", "authentication failed", nil)
			return
		}
		web.OK(c, http.StatusOK, loginResponse{Token: token})
	})
}
