package handlers

import (
	"net/http"

	"bizadmin/internal/domain"
	"bizadmin/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login handles POST /api/auth/login. "email" is accepted as an alias of
// "login" for older clients.
func (h *API) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	login := req.Login
	if login == "" {
		login = req.Email
	}
	pair, err := h.AuthService(c).Login(c.Request.Context(), login, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *API) Refresh(c *gin.Context) {
	var req refreshRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	pair, err := h.AuthService(c).Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *API) Logout(c *gin.Context) {
	if err := h.AuthService(c).Logout(c.Request.Context(), middleware.GetClaims(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *API) Me(c *gin.Context) {
	user, err := h.AuthService(c).Me(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		if domain.IsNotFound(err) {
			err = domain.UnauthorizedError{Msg: "account no longer exists"}
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}
