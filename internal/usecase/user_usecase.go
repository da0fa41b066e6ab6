package usecase

import (
	"context"
	stderrors "errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"

	"cwrs/internal/domain/entity"
	"cwrs/internal/domain/repository"
	"cwrs/internal/domain/service"
	"cwrs/pkg/errors"
	"cwrs/pkg/logger"
)

const (
	minPasswordLength = 6
	phoneNotProvided  = "未提供"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	productRepo  repository.ProductRepository
	authProvider service.AuthProvider
	avatars      *AvatarStore
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	productRepo repository.ProductRepository,
	authProvider service.AuthProvider,
	avatars *AvatarStore,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		productRepo:  productRepo,
		authProvider: authProvider,
		avatars:      avatars,
	}
}

type ProfileView struct {
	User    *entity.User    `json:"user"`
	Profile *entity.Profile `json:"profile"`
}

func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*ProfileView, error) {
	user, err := uc.userRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	profile, err := uc.profileFor(ctx, user)
	if err != nil {
		return nil, err
	}
	return &ProfileView{User: user, Profile: profile}, nil
}

// profileFor returns the stored profile or an empty one owned by user.
func (uc *UserUseCase) profileFor(ctx context.Context, user *entity.User) (*entity.Profile, error) {
	profile, err := uc.profileRepo.Get(ctx, user.Role, user.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	profile = &entity.Profile{Username: user.Username}
	if user.Role == entity.RoleSeller {
		profile.SellerID = user.ID
	} else {
		profile.BuyerID = user.ID
	}
	return profile, nil
}

type UpdateProfileInput struct {
	Username        string
	PhoneNumber     string
	Location        string
	Email           string
	NewPassword     string
	ConfirmPassword string
	CurrentPassword string
	Avatar          string
}

func (in UpdateProfileInput) validate() error {
	if in.NewPassword != "" && in.NewPassword != in.ConfirmPassword {
		return errors.BadRequest("密碼確認不匹配", nil)
	}
	if in.NewPassword != "" && utf8.RuneCountInString(in.NewPassword) < minPasswordLength {
		return errors.BadRequest("密碼至少需要6個字符", nil)
	}
	return nil
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*ProfileView, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	input.Email = strings.TrimSpace(input.Email)
	emailChanged := input.Email != "" && input.Email != user.Email
	if (emailChanged || input.NewPassword != "") && input.CurrentPassword == "" {
		return nil, errors.BadRequest("更改電子郵件或密碼需要輸入當前密碼", nil)
	}

	if emailChanged || input.NewPassword != "" {
		if _, err := uc.authProvider.SignIn(ctx, user.Email, input.CurrentPassword); err != nil {
			if stderrors.Is(err, service.ErrInvalidPassword) {
				return nil, errors.Unauthorized("當前密碼不正確", err)
			}
			return nil, mapAuthError(err, "儲存失敗")
		}
	}

	if emailChanged {
		if err := uc.authProvider.UpdateEmail(ctx, uid, input.Email); err != nil {
			return nil, mapAuthError(err, "儲存失敗")
		}
	}
	if input.NewPassword != "" {
		if err := uc.authProvider.UpdatePassword(ctx, uid, input.NewPassword); err != nil {
			return nil, mapAuthError(err, "儲存失敗")
		}
	}

	profile, err := uc.profileFor(ctx, user)
	if err != nil {
		return nil, err
	}
	username := strings.TrimSpace(input.Username)
	profile.PhoneNumber = input.PhoneNumber
	profile.Location = input.Location
	if username != "" {
		profile.Username = username
	}

	if input.Avatar != "" {
		url, err := uc.avatars.Store(ctx, user.Role, input.Avatar, profile.AvatarURL)
		if err != nil {
			return nil, err
		}
		profile.AvatarURL = url
	}

	if err := uc.profileRepo.Save(ctx, user.Role, profile); err != nil {
		return nil, err
	}

	if username != "" || emailChanged {
		if username != "" {
			user.Username = username
		}
		if emailChanged {
			user.Email = input.Email
		}
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	logger.Info("Profile updated for %s %s", user.Role, user.ID)
	return &ProfileView{User: user, Profile: profile}, nil
}

func (uc *UserUseCase) UploadAvatar(ctx context.Context, uid, dataURL string) (*entity.Profile, error) {
	user, err := uc.userRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	profile, err := uc.profileFor(ctx, user)
	if err != nil {
		return nil, err
	}

	url, err := uc.avatars.Store(ctx, user.Role, dataURL, profile.AvatarURL)
	if err != nil {
		return nil, err
	}
	profile.AvatarURL = url

	if err := uc.profileRepo.Save(ctx, user.Role, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

type SellerInfo struct {
	ID          string            `json:"id"`
	Username    string            `json:"username"`
	Email       string            `json:"email"`
	PhoneNumber string            `json:"phone_number"`
	Location    string            `json:"location,omitempty"`
	AvatarURL   string            `json:"avatar_url,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	Products    []*entity.Product `json:"products"`
}

func (uc *UserUseCase) SellerInfo(ctx context.Context, sellerID string) (*SellerInfo, error) {
	seller, err := uc.userRepo.GetByID(ctx, entity.RoleSeller, sellerID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.NotFound("Seller", err)
		}
		return nil, err
	}

	info := &SellerInfo{
		ID:          seller.ID,
		Username:    seller.Username,
		Email:       seller.Email,
		PhoneNumber: phoneNotProvided,
		CreatedAt:   seller.CreatedAt,
	}

	profile, err := uc.profileRepo.Get(ctx, entity.RoleSeller, sellerID)
	switch {
	case err == nil:
		if profile.PhoneNumber != "" {
			info.PhoneNumber = profile.PhoneNumber
		}
		info.Location = profile.Location
		info.AvatarURL = profile.AvatarURL
	case !errors.Is(err, "NOT_FOUND"):
		return nil, err
	}

	products, err := uc.productRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		p.SellerName = seller.Username
	}
	info.Products = products

	return info, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// FindUsers lists the caller's counterparts: sellers for a buyer and buyers for
// a seller, filtered by username or email.
func (uc *UserUseCase) FindUsers(ctx context.Context, uid, term string) ([]*entity.User, error) {
	me, err := uc.userRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	users, err := uc.userRepo.ListByRole(ctx, me.Role.Counterpart())
	if err != nil {
		return nil, err
	}

	term = strings.TrimSpace(term)
	return lo.Filter(users, func(u *entity.User, _ int) bool {
		return term == "" || containsFold(u.Username, term) || containsFold(u.Email, term)
	}), nil
}

type BuyerEntry struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Location    string `json:"location,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// FindBuyers joins every buyer with its profile. A buyer without a username
// passes the name filter; a location filter only passes buyers that have one.
func (uc *UserUseCase) FindBuyers(ctx context.Context, term, location string) ([]*BuyerEntry, error) {
	buyers, err := uc.userRepo.ListByRole(ctx, entity.RoleBuyer)
	if err != nil {
		return nil, err
	}

	profiles, err := uc.profileRepo.ListByRole(ctx, entity.RoleBuyer)
	if err != nil {
		return nil, err
	}
	byBuyer := lo.KeyBy(profiles, func(p *entity.Profile) string { return p.BuyerID })

	entries := lo.Map(buyers, func(b *entity.User, _ int) *BuyerEntry {
		e := &BuyerEntry{ID: b.ID, Username: b.Username, Email: b.Email}
		if p, ok := byBuyer[b.ID]; ok {
			if p.Username != "" {
				e.Username = p.Username
			}
			e.PhoneNumber = p.PhoneNumber
			e.Location = p.Location
			e.AvatarURL = p.AvatarURL
		}
		return e
	})

	term = strings.TrimSpace(term)
	location = strings.TrimSpace(location)
	return lo.Filter(entries, func(e *BuyerEntry, _ int) bool {
		nameMatch := e.Username == "" || containsFold(e.Username, term)
		locationMatch := location == "" || (e.Location != "" && containsFold(e.Location, location))
		return nameMatch && locationMatch
	}), nil
}
