package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vacansy/vacansy-api/internal/apperr"
	"github.com/vacansy/vacansy-api/internal/auth"
	"github.com/vacansy/vacansy-api/internal/dtos"
	"github.com/vacansy/vacansy-api/internal/models"
	"github.com/vacansy/vacansy-api/internal/store"
)

// AuthService owns registration, login and the password-reset flow.
type AuthService struct {
	users     store.UserStore
	companies store.CompanyStore
	tokens    *auth.TokenIssuer
	mailer    Mailer
	log       *zap.Logger
}

func NewAuthService(
	users store.UserStore,
	companies store.CompanyStore,
	tokens *auth.TokenIssuer,
	mailer Mailer,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		companies: companies,
		tokens:    tokens,
		mailer:    mailer,
		log:       log,
	}
}

// emailTaken checks both account tables: an address registered to a company
// cannot register a user and vice versa.
func (s *AuthService) emailTaken(ctx context.Context, email string) (bool, error) {
	if _, err := s.users.ByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return false, err
	}
	if _, err := s.companies.ByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return false, err
	}
	return false, nil
}

// RegisterUser creates a job-seeker (or the single admin) account and
// returns it with a fresh token.
func (s *AuthService) RegisterUser(ctx context.Context, req *dtos.RegisterUserRequest) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.emailTaken(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", fmt.Errorf("%w: email is already registered", apperr.ErrInvalidRequest)
	}

	role := models.RoleSeeker
	if req.Role != "" {
		role = models.Role(req.Role)
	}

	// At most one admin account may exist system-wide.
	if role == models.RoleAdmin {
		count, err := s.users.CountByRole(ctx, models.RoleAdmin)
		if err != nil {
			return nil, "", err
		}
		if count > 0 {
			return nil, "", fmt.Errorf("%w: only one admin is allowed", apperr.ErrInvalidRequest)
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	birthDate := req.BirthDate
	user := &models.User{
		Name:         req.Name,
		Surname:      req.Surname,
		BirthDate:    &birthDate,
		Phone:        req.Phone,
		Email:        email,
		PasswordHash: hash,
		ProfilePhoto: req.ProfilePhoto,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", string(role)))
	return user, token, nil
}

// RegisterCompany creates the login user and the company profile together.
func (s *AuthService) RegisterCompany(ctx context.Context, req *dtos.RegisterCompanyRequest) (*models.Company, *models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.emailTaken(ctx, email)
	if err != nil {
		return nil, nil, "", err
	}
	if taken {
		return nil, nil, "", fmt.Errorf("%w: email is already registered", apperr.ErrInvalidRequest)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, "", err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleCompany,
	}
	company := &models.Company{
		CompanyName:       req.CompanyName,
		Email:             email,
		RegistrantName:    req.RegistrantName,
		RegistrantSurname: req.RegistrantSurname,
		Description:       req.Description,
		Phone:             req.Phone,
		ProfilePhoto:      req.ProfilePhoto,
	}
	if err := s.companies.CreateWithUser(ctx, user, company); err != nil {
		return nil, nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, nil, "", err
	}

	s.log.Info("company registered",
		zap.Uint("company_id", company.ID),
		zap.Uint("user_id", user.ID),
	)
	return company, user, token, nil
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.ByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)
		}
		return "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthenticated)
	}
	return s.tokens.Issue(user.ID, user.Role)
}

// Me returns the caller's profile summary; company accounts show the
// company name instead of a personal one.
func (s *AuthService) Me(ctx context.Context, callerID uint) (*dtos.Profile, error) {
	user, err := s.users.ByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	profile := &dtos.Profile{
		ID:    user.ID,
		Role:  string(user.Role),
		Email: user.Email,
		Name:  user.Name,
	}
	if user.Role == models.RoleCompany {
		if company, err := s.companies.ByUserID(ctx, user.ID); err == nil {
			profile.Name = company.CompanyName
		}
	} else if profile.Name == "" {
		profile.Name = "Unnamed"
	}
	return profile, nil
}

// Companies is the public directory.
func (s *AuthService) Companies(ctx context.Context) ([]models.Company, error) {
	return s.companies.List(ctx)
}

// CompanyByID returns a company profile with its approved listings only.
func (s *AuthService) CompanyByID(ctx context.Context, id uint) (*models.Company, error) {
	return s.companies.ByIDWithApprovedJobs(ctx, id)
}

// ForgotPassword stores a one-hour reset token on the user and emails it.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.ByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}

	expiry := time.Now().Add(time.Hour)
	user.ResetToken = uuid.NewString()
	user.ResetTokenExpiry = &expiry
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(user.Email, user.ResetToken); err != nil {
		s.log.Error("reset mail failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return err
	}
	return nil
}

// ResetPassword rehashes the password when the token matches and has not
// expired, then clears the token.
func (s *AuthService) ResetPassword(ctx context.Context, req *dtos.ResetPasswordRequest) error {
	user, err := s.users.ByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return err
	}

	if user.ResetToken == "" || user.ResetToken != req.ResetToken ||
		user.ResetTokenExpiry == nil || user.ResetTokenExpiry.Before(time.Now()) {
		return fmt.Errorf("%w: invalid or expired reset token", apperr.ErrInvalidRequest)
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetTokenExpiry = nil
	return s.users.Update(ctx, user)
}
