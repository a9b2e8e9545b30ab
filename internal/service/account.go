package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"cupcake-store/internal/apperr"
	"cupcake-store/internal/auth"
	"cupcake-store/internal/config"
	"cupcake-store/internal/model"
	"cupcake-store/internal/repository"

	"gorm.io/gorm"
)

const (
	minPasswordLen = 6
	// bcrypt ignores everything past 72 bytes
	maxPasswordLen = 72

	msgInvalidCredentials = "invalid credentials"
)

type AccountService interface {
	Register(ctx context.Context, name, email, password string) (*model.PublicAccount, error)
	Login(ctx context.Context, email, password string) (*model.PublicAccount, error)
	GetAccount(ctx context.Context, accountID uint) (*model.PublicAccount, error)
	IsAdmin(ctx context.Context, accountID uint) (bool, error)
	RequireAdmin(ctx context.Context, accountID uint) (*model.PublicAccount, error)
	BootstrapAdmin(ctx context.Context, admin config.Admin) (bool, error)
}

type accountServiceImpl struct {
	log         *slog.Logger
	hasher      *auth.PasswordHasher
	accountRepo repository.AccountRepository
}

func NewAccountService(
	log *slog.Logger,
	hasher *auth.PasswordHasher,
	accountRepo repository.AccountRepository,
) AccountService {
	return &accountServiceImpl{
		log:         log,
		hasher:      hasher,
		accountRepo: accountRepo,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register always creates an ordinary user; roles are never taken from the caller.
func (s *accountServiceImpl) Register(ctx context.Context, name, email, password string) (*model.PublicAccount, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return nil, apperr.Validation("name, email and password are required")
	}
	if len(password) < minPasswordLen {
		return nil, apperr.Validation("password must have at least 6 characters")
	}
	if len(password) > maxPasswordLen {
		return nil, apperr.Validation("password must have at most 72 characters")
	}

	exists, err := s.accountRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, storageErr("check email", err)
	}
	if exists {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, storageErr("hash password", err)
	}

	account := &model.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, storageErr("create account", err)
	}

	s.log.InfoContext(ctx, "account registered", "account_id", account.ID, "role", account.Role)
	return account.Public(), nil
}

// Login answers unknown email and wrong password with the same error.
func (s *accountServiceImpl) Login(ctx context.Context, email, password string) (*model.PublicAccount, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.Auth(msgInvalidCredentials)
		}
		return nil, storageErr("find account", err)
	}

	if !s.hasher.Compare(account.PasswordHash, password) {
		return nil, apperr.Auth(msgInvalidCredentials)
	}

	s.log.InfoContext(ctx, "login succeeded", "account_id", account.ID, "role", account.Role)
	return account.Public(), nil
}

func (s *accountServiceImpl) GetAccount(ctx context.Context, accountID uint) (*model.PublicAccount, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, storageErr("find account", err)
	}
	return account.Public(), nil
}

func (s *accountServiceImpl) IsAdmin(ctx context.Context, accountID uint) (bool, error) {
	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return false, err
	}
	return account.Role.IsAdmin(), nil
}

// RequireAdmin loads the claimed account and checks its stored role.
func (s *accountServiceImpl) RequireAdmin(ctx context.Context, accountID uint) (*model.PublicAccount, error) {
	if accountID == 0 {
		return nil, apperr.Auth("authentication required")
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.Auth("user not found")
		}
		return nil, storageErr("find account", err)
	}

	if !account.Role.IsAdmin() {
		return nil, apperr.Permission("access denied: administrators only")
	}
	return account.Public(), nil
}

// BootstrapAdmin creates the default administrator when none exists and
// reports whether it did.
func (s *accountServiceImpl) BootstrapAdmin(ctx context.Context, admin config.Admin) (bool, error) {
	count, err := s.accountRepo.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return false, storageErr("count admins", err)
	}
	if count > 0 {
		return false, nil
	}

	hash, err := s.hasher.Hash(admin.Password)
	if err != nil {
		return false, storageErr("hash admin password", err)
	}

	account := &model.Account{
		Name:         admin.Name,
		Email:        normalizeEmail(admin.Email),
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, apperr.Conflict("admin email already registered as an ordinary user")
		}
		return false, storageErr("create admin", err)
	}

	s.log.WarnContext(ctx, "default administrator created, change its password",
		"email", account.Email,
		"password", admin.Password,
	)
	return true, nil
}
