package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *Server) ping(c *gin.Context) {
	c.JSON(http.StatusOK, pingResponse{Status: "OK"})
}

func (s *Server) listUsers(c *gin.Context) {
	ctx := c.Request.Context()

	if claims, ok := claimsFrom(c); ok {
		s.logger.Debug(ctx, "Listing users", "user_id", claims.UserID, "username", claims.Username)
	}

	users, err := s.users.List(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if users == nil {
		users = []*models.User{}
	}

	c.JSON(http.StatusOK, users)
}

func (s *Server) register(c *gin.Context) {
	ctx := c.Request.Context()

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
		return
	}

	user, err := s.users.Register(ctx, req.Username, req.Password, req.Department)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			c.JSON(http.StatusConflict, messageResponse{Message: msgUsernameTaken})
			return
		}
		_ = c.Error(err)
		return
	}

	s.logger.Info(ctx, "Registered", "username", user.Username, "id", user.ID)
	c.JSON(http.StatusCreated, user)
}

func (s *Server) login(c *gin.Context) {
	ctx := c.Request.Context()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
		return
	}

	res, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, messageResponse{Message: msgRejected})
			return
		}
		_ = c.Error(err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.TokenCookieName, res.Token, 0, "/", "", s.cookieSecure, true)
	c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf(welcomeMessageFmt, res.User.Username)})
}
