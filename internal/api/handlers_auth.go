package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendwise/expense-api/internal/models"
	"github.com/spendwise/expense-api/internal/service"
)

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) signupHandler(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	u, err := s.svc.Accounts.Signup(c.Request.Context(), service.Signup{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondError(c, err, "account")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created", "user": u})
}

func (s *Server) loginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	sess, err := s.svc.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
			return
		}
		respondError(c, err, "account")
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (s *Server) meHandler(c *gin.Context) {
	u, err := s.svc.Accounts.Me(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err, "account")
		return
	}
	c.JSON(http.StatusOK, u)
}
