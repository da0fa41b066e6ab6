package usecase

import (
	"context"
	stderrors "errors"
	"strings"

	"cwrs/internal/domain/entity"
	"cwrs/internal/domain/repository"
	"cwrs/internal/domain/service"
	"cwrs/pkg/errors"
	"cwrs/pkg/logger"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	authProvider service.AuthProvider
}

func NewAuthUseCase(userRepo repository.UserRepository, authProvider service.AuthProvider) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		authProvider: authProvider,
	}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
	Role     entity.Role
}

type AuthResult struct {
	User         *entity.User
	Token        string
	RefreshToken string
	ExpiresIn    int64
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Username = strings.TrimSpace(input.Username)
	if input.Email == "" || input.Username == "" || input.Password == "" || !input.Role.Valid() {
		return nil, errors.BadRequest("請填寫所有欄位並選擇用戶類型", nil)
	}

	uid, err := uc.authProvider.CreateUser(ctx, input.Email, input.Password, input.Username)
	if err != nil {
		logger.Error("AuthUseCase.Register Error: CreateUser email=%s: %v", input.Email, err)
		return nil, mapAuthError(err, "註冊失敗")
	}

	user := &entity.User{
		ID:       uid,
		Email:    input.Email,
		Username: input.Username,
		Role:     input.Role,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("Registered %s %s (%s)", user.Role, user.Username, user.ID)
	return user, nil
}

// Login resolves username to an email in the seller registry first, then the
// buyer registry, and signs in with that email.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.BadRequest("請填寫所有欄位", nil)
	}

	user, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.NotFoundMessage("找不到該用戶名，請檢查是否正確", err)
		}
		return nil, err
	}

	result, err := uc.authProvider.SignIn(ctx, user.Email, password)
	if err != nil {
		logger.Warn("AuthUseCase.Login: sign-in failed for %s: %v", username, err)
		return nil, mapAuthError(err, "登入失敗")
	}

	return &AuthResult{
		User:         user,
		Token:        result.IDToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	}, nil
}

// Me returns the registry entry of an authenticated uid together with its role.
func (uc *AuthUseCase) Me(ctx context.Context, uid string) (*entity.User, error) {
	return uc.userRepo.FindByID(ctx, uid)
}

func mapAuthError(err error, fallback string) error {
	switch {
	case stderrors.Is(err, service.ErrInvalidPassword):
		return errors.Unauthorized("密碼錯誤", err)
	case stderrors.Is(err, service.ErrUserNotFound):
		return errors.NotFoundMessage("找不到該用戶", err)
	case stderrors.Is(err, service.ErrEmailExists):
		return errors.Conflict("該電子郵件已被使用", err)
	case stderrors.Is(err, service.ErrWeakPassword):
		return errors.BadRequest("密碼至少需要6個字符", err)
	}
	return errors.Internal(fallback, err)
}
