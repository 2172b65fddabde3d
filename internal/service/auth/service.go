package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/audit"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/auth"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/employee"
	"github.com/paywise-hr/payroll-backend-go/internal/domain/user"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/jwt"
	"github.com/paywise-hr/payroll-backend-go/internal/pkg/requestmeta"
)

type AuthServiceImpl struct {
	adminRepo     user.AdminRepository
	employeeRepo  employee.EmployeeRepository
	jwtService    jwt.Service
	auditRecorder audit.Recorder
}

func NewAuthService(
	adminRepo user.AdminRepository,
	employeeRepo employee.EmployeeRepository,
	jwtService jwt.Service,
	auditRecorder audit.Recorder,
) auth.AuthService {
	return &AuthServiceImpl{
		adminRepo:     adminRepo,
		employeeRepo:  employeeRepo,
		jwtService:    jwtService,
		auditRecorder: auditRecorder,
	}
}

// Login authenticates against the admins table first, then employees. Both
// miss paths collapse into ErrInvalidCredentials so responses never reveal
// whether a username exists.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	actor, passwordHash, err := s.resolveAccount(ctx, req.Username)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(actor)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	s.auditRecorder.Record(ctx, audit.Entry{
		Actor:     actor,
		Action:    "auth.login",
		Entity:    string(actor.Type),
		EntityID:  actor.ID,
		RequestIP: requestmeta.ClientIP(ctx),
	})

	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Role:        string(actor.Type),
	}, nil
}

func (s *AuthServiceImpl) resolveAccount(ctx context.Context, username string) (user.Actor, string, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err == nil {
		return user.Actor{
			Type: user.RoleAdmin,
			ID:   admin.ID,
			Name: admin.Username,
		}, admin.PasswordHash, nil
	}
	if !errors.Is(err, user.ErrAdminNotFound) {
		return user.Actor{}, "", err
	}

	emp, err := s.employeeRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return user.Actor{}, "", auth.ErrInvalidCredentials
		}
		return user.Actor{}, "", err
	}

	return user.Actor{
		Type: user.RoleEmployee,
		ID:   emp.ID,
		Name: emp.Username,
	}, emp.PasswordHash, nil
}
