package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/cryptox"
	"github.com/lacs/lacsapi/internal/logging"
	"github.com/lacs/lacsapi/internal/server/auth"
	"github.com/lacs/lacsapi/internal/server/metrics"
	"github.com/lacs/lacsapi/internal/server/models"
	"github.com/lacs/lacsapi/internal/server/repositories/repomanager"
)

// Names identifies a person for credential generation.
type Names struct {
	Nombre          string `json:"nombre"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno"`
}

// CreatedAdmin carries the new admin and its one-time credentials.
type CreatedAdmin struct {
	Admin       *models.Admin        `json:"admin"`
	Credentials *cryptox.Credentials `json:"credentials"`
}

// AdminService manages administrator accounts.
type AdminService struct {
	repomanager repomanager.RepositoryManager
	users       *UserService
	issuer      *auth.Issuer
	metrics     *metrics.Collector
	logger      logging.Logger

	// bootstrapMu serializes the count check and insert of the first admin.
	bootstrapMu sync.Mutex
}

func NewAdminService(m repomanager.RepositoryManager, users *UserService, issuer *auth.Issuer, mc *metrics.Collector, logger logging.Logger) *AdminService {
	return &AdminService{
		repomanager: m,
		users:       users,
		issuer:      issuer,
		metrics:     mc,
		logger:      logger.With("module", "admins"),
	}
}

func (s *AdminService) Login(ctx context.Context, nickname, password string) (*LoginResult, error) {
	admin, err := s.authenticate(ctx, nickname, password)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	token, err := issue(ctx, s.issuer, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: admin.Nickname},
		AccountID:        admin.ID,
		Rol:              models.RoleAdministrador,
		Tipo:             auth.KindAdmin,
	})
	if err != nil {
		return nil, err
	}

	res := newLoginResult(token, s.issuer, auth.KindAdmin)
	res.Admin = admin
	return res, nil
}

// authenticate returns common.ErrorNotFound for unknown admins and
// common.ErrorUnauthorized for a wrong password.
func (s *AdminService) authenticate(ctx context.Context, nickname, password string) (*models.Admin, error) {
	admin, err := s.repomanager.Admins().GetByNickname(ctx, nickname)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			burnVerify(password)
			s.metrics.RecordLoginFailure(string(auth.KindAdmin))
		}
		return nil, err
	}
	if !cryptox.VerifyPassword(admin.PasswordHash, password) {
		s.metrics.RecordLoginFailure(string(auth.KindAdmin))
		s.logger.Warn(ctx, "wrong admin password", "nickname", nickname)
		return nil, invalidCredentials()
	}
	return admin, nil
}

// CreateFirstAdmin bootstraps the first administrator. Once any admin
// exists it fails with common.ErrorForbidden.
func (s *AdminService) CreateFirstAdmin(ctx context.Context, names Names) (*CreatedAdmin, error) {
	if err := requireNames(names.Nombre, names.ApellidoPaterno); err != nil {
		return nil, err
	}

	s.bootstrapMu.Lock()
	defer s.bootstrapMu.Unlock()

	repo := s.repomanager.Admins()
	n, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fmt.Errorf("%w: an administrator already exists", common.ErrorForbidden)
	}

	creds, err := cryptox.GenerateCredentials(names.Nombre, names.ApellidoPaterno, names.ApellidoMaterno)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	hash, err := cryptox.HashPassword(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	admin, err := repo.Create(ctx, &models.Admin{
		Nickname:        creds.Nickname,
		Nombre:          strings.TrimSpace(names.Nombre),
		ApellidoPaterno: strings.TrimSpace(names.ApellidoPaterno),
		ApellidoMaterno: strings.TrimSpace(names.ApellidoMaterno),
		PasswordHash:    hash,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "first administrator created", "nickname", admin.Nickname)
	return &CreatedAdmin{Admin: admin, Credentials: creds}, nil
}

// CreateUser creates an account authenticated by admin nickname and
// password instead of a token.
func (s *AdminService) CreateUser(ctx context.Context, adminNickname, adminPassword string, in models.NewUser) (*CreatedUser, error) {
	admin, err := s.authenticate(ctx, adminNickname, adminPassword)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: unknown administrator", common.ErrorForbidden)
		}
		return nil, err
	}

	out, err := s.users.create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "user created by administrator", "nickname", out.User.Nickname, "admin", admin.Nickname)
	return out, nil
}

// GenerateCredentials previews a nickname and password without storing
// anything.
func (s *AdminService) GenerateCredentials(_ context.Context, caller *auth.Claims, names Names) (*cryptox.Credentials, error) {
	if err := auth.RequireManager(caller); err != nil {
		return nil, err
	}
	if err := requireNames(names.Nombre, names.ApellidoPaterno); err != nil {
		return nil, err
	}
	creds, err := cryptox.GenerateCredentials(names.Nombre, names.ApellidoPaterno, names.ApellidoMaterno)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return creds, nil
}

// SetPassword replaces an admin password; used by the operator CLI.
func (s *AdminService) SetPassword(ctx context.Context, nickname, password string) error {
	if err := validateNewPassword(password); err != nil {
		return err
	}
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if err := s.repomanager.Admins().UpdatePassword(ctx, nickname, hash); err != nil {
		return err
	}
	s.logger.Info(ctx, "administrator password set", "nickname", nickname)
	return nil
}
