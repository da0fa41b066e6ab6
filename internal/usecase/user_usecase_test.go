package usecase

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cwrs/internal/domain/entity"
	"cwrs/internal/domain/service"
	"cwrs/internal/domain/service/mocks"
	"cwrs/pkg/errors"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func pngDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader)
}

type userFixture struct {
	uc       *UserUseCase
	users    *memUsers
	profiles *memProfiles
	products *memProducts
	auth     *mocks.MockAuthProvider
}

func newUserFixture(t *testing.T, users ...*entity.User) *userFixture {
	ctrl := gomock.NewController(t)
	f := &userFixture{
		users:    newMemUsers(users...),
		profiles: newMemProfiles(),
		products: newMemProducts(),
		auth:     mocks.NewMockAuthProvider(ctrl),
	}
	f.uc = NewUserUseCase(f.users, f.profiles, f.products, f.auth, NewAvatarStore(nil, 1024))
	return f
}

func TestUserUseCase_GetProfileWithoutDocument(t *testing.T) {
	f := newUserFixture(t, seller("s1", "sam"))

	view, err := f.uc.GetProfile(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", view.Profile.SellerID)
	assert.Equal(t, "sam", view.Profile.Username)
}

func TestUserUseCase_UpdateProfileValidation(t *testing.T) {
	f := newUserFixture(t, buyer("b1", "bob"))
	ctx := context.Background()

	tests := []struct {
		name    string
		input   UpdateProfileInput
		message string
	}{
		{"confirmation mismatch", UpdateProfileInput{NewPassword: "abcdef", ConfirmPassword: "abcdeg"}, "密碼確認不匹配"},
		{"short password", UpdateProfileInput{NewPassword: "abc", ConfirmPassword: "abc"}, "密碼至少需要6個字符"},
		{"email change needs current password", UpdateProfileInput{Email: "new@example.com"}, "更改電子郵件或密碼需要輸入當前密碼"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.UpdateProfile(ctx, "b1", tt.input)
			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestUserUseCase_UpdateProfileWrongCurrentPassword(t *testing.T) {
	f := newUserFixture(t, buyer("b1", "bob"))

	f.auth.EXPECT().SignIn(gomock.Any(), "bob@example.com", "nope").Return(nil, service.ErrInvalidPassword)

	_, err := f.uc.UpdateProfile(context.Background(), "b1", UpdateProfileInput{
		NewPassword: "abcdef", ConfirmPassword: "abcdef", CurrentPassword: "nope",
	})
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "當前密碼不正確", appErr.Message)
}

func TestUserUseCase_UpdateProfileChangesEmailAndUsername(t *testing.T) {
	f := newUserFixture(t, buyer("b1", "bob"))
	ctx := context.Background()

	f.auth.EXPECT().SignIn(gomock.Any(), "bob@example.com", "current").Return(&service.SignInResult{UID: "b1"}, nil)
	f.auth.EXPECT().UpdateEmail(gomock.Any(), "b1", "robert@example.com").Return(nil)

	view, err := f.uc.UpdateProfile(ctx, "b1", UpdateProfileInput{
		Username:        "robert",
		PhoneNumber:     "0912",
		Location:        "Taipei",
		Email:           "robert@example.com",
		CurrentPassword: "current",
		Avatar:          pngDataURL(),
	})
	require.NoError(t, err)
	assert.Equal(t, "robert", view.User.Username)
	assert.True(t, strings.HasPrefix(view.Profile.AvatarURL, "data:image/png;base64,"))

	stored, err := f.users.GetByID(ctx, entity.RoleBuyer, "b1")
	require.NoError(t, err)
	assert.Equal(t, "robert@example.com", stored.Email)

	profile, err := f.profiles.Get(ctx, entity.RoleBuyer, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Taipei", profile.Location)
}

func TestUserUseCase_UpdateProfileKeepsUsernameWhenOmitted(t *testing.T) {
	f := newUserFixture(t, buyer("b1", "bob"))
	ctx := context.Background()

	view, err := f.uc.UpdateProfile(ctx, "b1", UpdateProfileInput{PhoneNumber: "0912"})
	require.NoError(t, err)
	assert.Equal(t, "bob", view.Profile.Username)
	assert.Equal(t, "0912", view.Profile.PhoneNumber)

	profile, err := f.profiles.Get(ctx, entity.RoleBuyer, "b1")
	require.NoError(t, err)
	assert.Equal(t, "bob", profile.Username)

	stored, err := f.users.GetByID(ctx, entity.RoleBuyer, "b1")
	require.NoError(t, err)
	assert.Equal(t, "bob", stored.Username)
}

func TestUserUseCase_SellerInfo(t *testing.T) {
	f := newUserFixture(t, seller("s1", "sam"))
	ctx := context.Background()
	f.products.products["p1"] = &entity.Product{ID: "p1", Name: "cans", SellerID: "s1"}

	info, err := f.uc.SellerInfo(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "未提供", info.PhoneNumber)
	require.Len(t, info.Products, 1)
	assert.Equal(t, "sam", info.Products[0].SellerName)

	_, err = f.uc.SellerInfo(ctx, "missing")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestUserUseCase_FindUsersListsCounterparts(t *testing.T) {
	f := newUserFixture(t, buyer("b1", "bob"), seller("s1", "GreenCo"), seller("s2", "metalworks"))

	users, err := f.uc.FindUsers(context.Background(), "b1", "green")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "s1", users[0].ID)

	all, err := f.uc.FindUsers(context.Background(), "s1", "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b1", all[0].ID)
}

func TestUserUseCase_FindBuyers(t *testing.T) {
	f := newUserFixture(t, buyer("b1", "alice"), buyer("b2", "bert"))
	ctx := context.Background()
	require.NoError(t, f.profiles.Save(ctx, entity.RoleBuyer, &entity.Profile{BuyerID: "b1", Location: "Taichung", PhoneNumber: "0911"}))

	entries, err := f.uc.FindBuyers(ctx, "", "taichung")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b1", entries[0].ID)
	assert.Equal(t, "0911", entries[0].PhoneNumber)

	entries, err = f.uc.FindBuyers(ctx, "BER", "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b2", entries[0].ID)
}

func TestDecodeDataURL(t *testing.T) {
	_, err := decodeDataURL("not a data url", 0)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	text := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello world"))
	_, err = decodeDataURL(text, 0)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "頭像必須是圖片檔案", appErr.Message)

	svg := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`))
	_, err = decodeDataURL(svg, 0)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "頭像必須是圖片檔案", appErr.Message)

	_, err = decodeDataURL(pngDataURL(), 8)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "頭像檔案過大", appErr.Message)

	img, err := decodeDataURL(pngDataURL(), 0)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.mimeType)
}

func TestAvatarStore_UploadsAndRemovesPrevious(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := mocks.NewMockFileUploadService(ctrl)
	store := NewAvatarStore(files, 0)
	ctx := context.Background()

	old := "https://storage.googleapis.com/bucket/avatars/seller/old.png"
	files.EXPECT().UploadFile(gomock.Any(), gomock.Any(), "image/png", "avatars/seller").Return("https://storage.googleapis.com/bucket/avatars/seller/new.png", nil)
	files.EXPECT().Owns(old).Return(true)
	files.EXPECT().DeleteFile(gomock.Any(), old).Return(nil)

	url, err := store.Store(ctx, entity.RoleSeller, pngDataURL(), old)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "new.png"))
}
