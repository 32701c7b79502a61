package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zencrm/backend/internal/domain/identity"
	"github.com/zencrm/backend/internal/domain/shared"
)

// UserService handles back-office account management
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create creates a new account. Admins may assign any role; managers only
// agent and user accounts; everyone else is refused.
func (s *UserService) Create(ctx context.Context, actor identity.Actor, req CreateUserRequest) (*UserResponse, error) {
	role, err := identity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	if !actor.Role.CanAssignRole(role) {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot create accounts with this role")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Password, req.DisplayName, role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Account created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", role.String()),
		zap.String("created_by", actor.UserID.String()),
	)

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves accounts with filtering and pagination
func (s *UserService) List(ctx context.Context, filter UserListFilter) ([]UserResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	users, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.userRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToUserResponses(users), total, nil
}

// Update updates an account. Role changes follow the same assignment rule
// as account creation.
func (s *UserService) Update(ctx context.Context, actor identity.Actor, userID uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		role, err := identity.ParseRole(*req.Role)
		if err != nil {
			return nil, err
		}
		if !actor.Role.CanAssignRole(role) {
			return nil, shared.NewDomainError("FORBIDDEN", "You cannot assign this role")
		}
		if err := user.SetRole(role); err != nil {
			return nil, err
		}
	}

	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}

	if req.Password != nil {
		if actor.Role != identity.RoleAdmin && actor.UserID != user.ID {
			return nil, shared.NewDomainError("FORBIDDEN", "You cannot reset this account's password")
		}
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Deactivate deactivates an account (admin only, never your own)
func (s *UserService) Deactivate(ctx context.Context, actor identity.Actor, userID uuid.UUID) (*UserResponse, error) {
	if actor.Role != identity.RoleAdmin {
		return nil, shared.NewDomainError("FORBIDDEN", "Only administrators can deactivate accounts")
	}
	if actor.UserID == userID {
		return nil, shared.NewDomainError("FORBIDDEN", "You cannot deactivate your own account")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Activate reactivates an account (admin only)
func (s *UserService) Activate(ctx context.Context, actor identity.Actor, userID uuid.UUID) (*UserResponse, error) {
	if actor.Role != identity.RoleAdmin {
		return nil, shared.NewDomainError("FORBIDDEN", "Only administrators can activate accounts")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.Activate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Permissions returns the capability set for the acting user
func (s *UserService) Permissions(actor identity.Actor) PermissionsResponse {
	return PermissionsResponse{
		UserID:      actor.UserID,
		Role:        actor.Role.String(),
		Permissions: actor.Permissions(),
	}
}
