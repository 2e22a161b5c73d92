package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vacansy/vacansy-api/internal/auth"
	"github.com/vacansy/vacansy-api/internal/dtos"
	"github.com/vacansy/vacansy-api/internal/services"
)

// AuthHandler exposes registration, login, the company directory and the
// password-reset flow.
type AuthHandler struct {
	Auth *services.AuthService
}

func NewAuthHandler(a *services.AuthService) *AuthHandler {
	return &AuthHandler{Auth: a}
}

// RegisterUser is POST /auth/register/user.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req dtos.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr(c, err)
		return
	}

	user, token, err := h.Auth.RegisterUser(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered",
		"userId":  user.ID,
		"token":   token,
	})
}

// RegisterCompany is POST /auth/register/company.
func (h *AuthHandler) RegisterCompany(c *gin.Context) {
	var req dtos.RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr(c, err)
		return
	}

	company, user, token, err := h.Auth.RegisterCompany(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Company registered successfully",
		"companyId": company.ID,
		"userId":    user.ID,
		"token":     token,
	})
}

// Login is POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr(c, err)
		return
	}

	token, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout is POST /auth/logout. Tokens are stateless; the endpoint only
// confirms one was presented.
func (h *AuthHandler) Logout(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No token provided"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me is GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	caller := auth.CallerFrom(c)

	profile, err := h.Auth.Me(c.Request.Context(), caller.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Companies is GET /auth/companies, the public directory.
func (h *AuthHandler) Companies(c *gin.Context) {
	companies, err := h.Auth.Companies(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// CompanyByID is GET /auth/companies/:id; its job list only shows approved
// listings.
func (h *AuthHandler) CompanyByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	company, err := h.Auth.CompanyByID(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// ForgotPassword is POST /auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dtos.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr(c, err)
		return
	}

	if err := h.Auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reset code sent to email"})
}

// ResetPassword is POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dtos.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr(c, err)
		return
	}

	if err := h.Auth.ResetPassword(c.Request.Context(), &req); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
