package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/cryptox"
	"github.com/lacs/lacsapi/internal/logging"
	"github.com/lacs/lacsapi/internal/server/auth"
	"github.com/lacs/lacsapi/internal/server/metrics"
	"github.com/lacs/lacsapi/internal/server/models"
	"github.com/lacs/lacsapi/internal/server/repositories/repomanager"
)

// nicknameAttempts bounds retries when a generated nickname is taken.
const nicknameAttempts = 5

// CreatedUser is the outcome of an account creation. Credentials is set
// only when the password was generated and is never retrievable again.
type CreatedUser struct {
	User        *models.User         `json:"user"`
	Credentials *cryptox.Credentials `json:"credentials,omitempty"`
}

// UserService manages regular accounts.
type UserService struct {
	repomanager repomanager.RepositoryManager
	issuer      *auth.Issuer
	metrics     *metrics.Collector
	logger      logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, issuer *auth.Issuer, mc *metrics.Collector, logger logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		issuer:      issuer,
		metrics:     mc,
		logger:      logger.With("module", "users"),
	}
}

// Login checks the password and mints a user token. Unknown nicknames and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, nickname, password string) (*LoginResult, error) {
	user, err := s.repomanager.Users().GetByNickname(ctx, nickname)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		burnVerify(password)
		s.metrics.RecordLoginFailure(string(auth.KindUser))
		return nil, invalidCredentials()
	}
	if !cryptox.VerifyPassword(user.PasswordHash, password) {
		s.metrics.RecordLoginFailure(string(auth.KindUser))
		s.logger.Warn(ctx, "wrong password", "nickname", nickname)
		return nil, invalidCredentials()
	}

	token, err := issue(ctx, s.issuer, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.Nickname},
		AccountID:        user.ID,
		Rol:              user.Rol,
		Tipo:             auth.KindUser,
	})
	if err != nil {
		return nil, err
	}

	res := newLoginResult(token, s.issuer, auth.KindUser)
	res.User = user
	return res, nil
}

// Create adds an account on behalf of a manager.
func (s *UserService) Create(ctx context.Context, caller *auth.Claims, in models.NewUser) (*CreatedUser, error) {
	if err := auth.RequireManager(caller); err != nil {
		return nil, err
	}
	return s.create(ctx, in)
}

func (s *UserService) create(ctx context.Context, in models.NewUser) (*CreatedUser, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.Nickname = strings.TrimSpace(in.Nickname)
	in.Email = strings.TrimSpace(in.Email)

	repo := s.repomanager.Users()

	if in.Nickname == "" {
		nick, err := s.freeNickname(ctx, in)
		if err != nil {
			return nil, err
		}
		in.Nickname = nick
	}

	taken, err := repo.ExistsByNicknameOrEmail(ctx, in.Nickname, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: a user with that nickname or email already exists", common.ErrorAlreadyExists)
	}

	var generated *cryptox.Credentials
	if in.Password == "" {
		pw, err := cryptox.GeneratePassword()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		in.Password = pw
		generated = &cryptox.Credentials{Nickname: in.Nickname, Password: pw}
	} else if err := validateNewPassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user, err := repo.Create(ctx, &models.User{
		Nombre:          strings.TrimSpace(in.Nombre),
		ApellidoPaterno: strings.TrimSpace(in.ApellidoPaterno),
		ApellidoMaterno: strings.TrimSpace(in.ApellidoMaterno),
		Nickname:        in.Nickname,
		Email:           in.Email,
		Telefono:        in.Telefono,
		Empresa:         in.Empresa,
		Rol:             in.Rol,
		PasswordHash:    hash,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user created", "nickname", user.Nickname, "rol", user.Rol)
	return &CreatedUser{User: user, Credentials: generated}, nil
}

func (s *UserService) freeNickname(ctx context.Context, in models.NewUser) (string, error) {
	for range nicknameAttempts {
		nick, err := cryptox.GenerateNickname(in.Nombre, in.ApellidoPaterno, in.ApellidoMaterno)
		if err != nil {
			return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		taken, err := s.repomanager.Users().ExistsByNicknameOrEmail(ctx, nick, "")
		if err != nil {
			return "", err
		}
		if !taken {
			return nick, nil
		}
	}
	return "", fmt.Errorf("%w: could not find a free nickname", common.ErrorInternal)
}

// ChangePassword replaces the password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, caller *auth.Claims, nickname, current, next string) error {
	if err := auth.RequireSelfOrManager(caller, nickname); err != nil {
		return err
	}
	if err := validateNewPassword(next); err != nil {
		return err
	}

	repo := s.repomanager.Users()
	user, err := repo.GetByNickname(ctx, nickname)
	if err != nil {
		return err
	}
	if !cryptox.VerifyPassword(user.PasswordHash, current) {
		return fmt.Errorf("%w: current password is incorrect", common.ErrorUnauthorized)
	}

	hash, err := cryptox.HashPassword(next)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	user.PasswordHash = hash
	if err := repo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info(ctx, "password changed", "nickname", nickname, "by", caller.Subject)
	return nil
}

// ResetPassword assigns a generated password and returns it once.
func (s *UserService) ResetPassword(ctx context.Context, caller *auth.Claims, nickname string) (*cryptox.Credentials, error) {
	if err := auth.RequireManager(caller); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users()
	user, err := repo.GetByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}

	pw, err := cryptox.GeneratePassword()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	hash, err := cryptox.HashPassword(pw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	user.PasswordHash = hash
	if err := repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "password reset", "nickname", nickname, "by", caller.Subject)
	return &cryptox.Credentials{Nickname: nickname, Password: pw}, nil
}

// UpdateContact changes email and/or telefono. The account password must
// be confirmed.
func (s *UserService) UpdateContact(ctx context.Context, caller *auth.Claims, nickname, currentPassword, email, telefono string) (*models.User, error) {
	if err := auth.RequireSelfOrManager(caller, nickname); err != nil {
		return nil, err
	}
	email, telefono = strings.TrimSpace(email), strings.TrimSpace(telefono)
	if email == "" && telefono == "" {
		return nil, fmt.Errorf("%w: provide email or telefono", common.ErrorValidation)
	}

	repo := s.repomanager.Users()
	user, err := repo.GetByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}
	if !cryptox.VerifyPassword(user.PasswordHash, currentPassword) {
		return nil, fmt.Errorf("%w: password is incorrect", common.ErrorUnauthorized)
	}

	if email != "" {
		user.Email = email
	}
	if telefono != "" {
		user.Telefono = telefono
	}
	if err := repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Search is open to managers and supervisors and needs at least one
// criterion.
func (s *UserService) Search(ctx context.Context, caller *auth.Claims, criteria models.UserSearch, limit int) ([]*models.User, error) {
	if err := auth.RequireAnyRole(caller, models.RoleSupervisor); err != nil {
		return nil, err
	}
	if criteria.Empty() {
		return nil, fmt.Errorf("%w: at least one search criterion is required", common.ErrorValidation)
	}
	if criteria.Rol != "" && !criteria.Rol.Valid() {
		return nil, fmt.Errorf("%w: invalid rol %q", common.ErrorValidation, criteria.Rol)
	}
	return s.repomanager.Users().Search(ctx, criteria, limit)
}

// Update applies the set fields of upd.
func (s *UserService) Update(ctx context.Context, caller *auth.Claims, nickname string, upd models.UserUpdate) (*models.User, error) {
	if err := auth.RequireManager(caller); err != nil {
		return nil, err
	}
	if upd.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", common.ErrorValidation)
	}
	if upd.Rol != nil && !upd.Rol.Valid() {
		return nil, fmt.Errorf("%w: invalid rol %q", common.ErrorValidation, *upd.Rol)
	}

	repo := s.repomanager.Users()
	user, err := repo.GetByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}
	upd.Apply(user)
	if err := repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user updated", "nickname", nickname, "by", caller.Subject)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, caller *auth.Claims, nickname string) error {
	if err := auth.RequireManager(caller); err != nil {
		return err
	}
	if err := s.repomanager.Users().Delete(ctx, nickname); err != nil {
		return err
	}
	s.logger.Info(ctx, "user deleted", "nickname", nickname, "by", caller.Subject)
	return nil
}
