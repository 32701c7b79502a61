package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/zencrm/backend/internal/domain/identity"
	"github.com/zencrm/backend/internal/domain/shared"
	"github.com/zencrm/backend/internal/infrastructure/auth"
)

// AuthService handles sign-in and token issuing
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates a user by email and password and issues an access
// token. Unknown accounts and wrong passwords answer identically so the
// endpoint does not leak which emails exist.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warn("Login attempt for unknown email")
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.IsActive() {
		s.logger.Warn("Login attempt for deactivated account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	issued, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		s.logger.Error("Failed to generate access token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Login still succeeds; the timestamp is advisory
		s.logger.Warn("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User signed in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role.String()),
	)

	return &LoginResponse{
		AccessToken: issued.AccessToken,
		TokenType:   issued.TokenType,
		ExpiresAt:   issued.ExpiresAt,
		User:        ToUserResponse(user),
	}, nil
}

// ResolveActor turns validated token claims into an acting user
func (s *AuthService) ResolveActor(claims *auth.Claims) (identity.Actor, error) {
	userID, err := claims.GetUserUUID()
	if err != nil {
		return identity.Actor{}, shared.NewDomainError("INVALID_TOKEN", "Token does not identify a user")
	}
	role := claims.GetRole()
	if role == "" {
		return identity.Actor{}, shared.NewDomainError("INVALID_TOKEN", "Token does not carry a valid role")
	}
	return identity.NewActor(userID, role), nil
}
