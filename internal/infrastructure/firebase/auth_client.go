package firebase

import (
	"context"
	"errors"
	"strings"

	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"cwrs/internal/domain/service"
)

// FirebaseAuthClient combines the Admin SDK, used for token verification and
// account management, with the Identity Toolkit REST API, used for password
// sign-in which the Admin SDK does not offer.
type FirebaseAuthClient struct {
	client  *auth.Client
	toolkit *identitytoolkit.Service
}

func NewFirebaseAuthClient(ctx context.Context, client *auth.Client, apiKey string) (*FirebaseAuthClient, error) {
	toolkit, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &FirebaseAuthClient{
		client:  client,
		toolkit: toolkit,
	}, nil
}

var _ service.AuthProvider = (*FirebaseAuthClient)(nil)

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", mapAdminError(err)
	}

	return user.UID, nil
}

func (f *FirebaseAuthClient) SignIn(ctx context.Context, email, password string) (*service.SignInResult, error) {
	resp, err := f.toolkit.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, mapToolkitError(err)
	}

	return &service.SignInResult{
		UID:          resp.LocalId,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, idToken string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

func (f *FirebaseAuthClient) UpdateEmail(ctx context.Context, uid, email string) error {
	_, err := f.client.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Email(email))
	return mapAdminError(err)
}

func (f *FirebaseAuthClient) UpdatePassword(ctx context.Context, uid, password string) error {
	_, err := f.client.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Password(password))
	return mapAdminError(err)
}

// TestConnection performs a cheap authenticated call against the project.
func (f *FirebaseAuthClient) TestConnection(ctx context.Context) error {
	_, err := f.client.GetUser(ctx, "health-check-probe")
	if err != nil && !auth.IsUserNotFound(err) {
		return err
	}
	return nil
}

func mapAdminError(err error) error {
	switch {
	case err == nil:
		return nil
	case auth.IsEmailAlreadyExists(err):
		return errors.Join(service.ErrEmailExists, err)
	case auth.IsUserNotFound(err):
		return errors.Join(service.ErrUserNotFound, err)
	}
	return err
}

// Identity Toolkit reports failures as an error message code such as
// INVALID_PASSWORD or "WEAK_PASSWORD : Password should be at least 6 characters".
func mapToolkitError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	code := apiErr.Message
	if i := strings.Index(code, " "); i > 0 {
		code = code[:i]
	}

	switch code {
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return errors.Join(service.ErrInvalidPassword, err)
	case "EMAIL_NOT_FOUND", "USER_DISABLED":
		return errors.Join(service.ErrUserNotFound, err)
	case "EMAIL_EXISTS":
		return errors.Join(service.ErrEmailExists, err)
	case "WEAK_PASSWORD":
		return errors.Join(service.ErrWeakPassword, err)
	}
	return err
}
