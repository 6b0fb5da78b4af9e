/*
Package account implements registration and login on top of the API client
and the session synchronizer.

All input validation happens here, before any network call: target format by
account type, password length, captcha presence. A successful login writes
the session slots and broadcasts the new login state, so no caller ever needs
to poll for its own mutation.
*/
package account

import (
	"context"
	"regexp"
	"unicode/utf8"

	"storefront/internal/app/session"
	"storefront/internal/client"
	"storefront/internal/pkg/errs"
)

var (
	phoneRegex = regexp.MustCompile(`^1[3-9]\d{9}$`)
	emailRegex = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
)

// Password length bounds, in runes.
const (
	minPasswordLen = 6
	maxPasswordLen = 50
)

// API is the slice of the client the account service uses.
type API interface {
	GenerateCaptcha(ctx context.Context, req *client.GenerateCaptchaRequest) (*client.GenerateCaptchaResponse, error)
	Register(ctx context.Context, req *client.RegisterRequest) (*client.RegisterResponse, error)
	Login(ctx context.Context, req *client.LoginRequest) (*client.LoginResponse, error)
}

// Service drives the auth flows.
type Service struct {
	api     API
	session *session.Synchronizer
}

// NewService wires the API client and the session synchronizer together.
func NewService(api API, sync *session.Synchronizer) *Service {
	return &Service{api: api, session: sync}
}

// ValidateTarget checks the account identifier against its declared type.
func ValidateTarget(targetType int32, target string) error {
	switch targetType {
	case client.TargetTypePhone:
		if target == "" {
			return errs.NewError(errs.ErrInvalidParams, "phone number must not be empty")
		}
		if !phoneRegex.MatchString(target) {
			return errs.NewError(errs.ErrInvalidParams, "phone number format is invalid")
		}
	case client.TargetTypeEmail:
		if target == "" {
			return errs.NewError(errs.ErrInvalidParams, "email must not be empty")
		}
		if !emailRegex.MatchString(target) {
			return errs.NewError(errs.ErrInvalidParams, "email format is invalid")
		}
	default:
		return errs.NewError(errs.ErrInvalidParams, "unknown account type")
	}
	return nil
}

// ValidatePassword checks password length bounds.
func ValidatePassword(password string) error {
	length := utf8.RuneCountInString(password)
	if length < minPasswordLen || length > maxPasswordLen {
		return errs.NewError(errs.ErrInvalidParams, "password must be 6 to 50 characters")
	}
	return nil
}

// RequestCaptcha validates the target and asks the backend for a captcha,
// returning the captcha id the registration must echo back.
func (s *Service) RequestCaptcha(ctx context.Context, targetType int32, target string) (string, error) {
	if err := ValidateTarget(targetType, target); err != nil {
		return "", err
	}

	resp, err := s.api.GenerateCaptcha(ctx, &client.GenerateCaptchaRequest{
		Target:     target,
		TargetType: targetType,
	})
	if err != nil {
		return "", err
	}
	return resp.CaptchaID, nil
}

// RegisterInput carries a complete registration form.
type RegisterInput struct {
	TargetType int32
	Target     string
	Password   string
	Captcha    string
	CaptchaID  string
	UserType   int32
}

// Register validates the form and creates the account, returning the new
// user id.
func (s *Service) Register(ctx context.Context, input RegisterInput) (int64, error) {
	if err := ValidateTarget(input.TargetType, input.Target); err != nil {
		return 0, err
	}
	if err := ValidatePassword(input.Password); err != nil {
		return 0, err
	}
	if input.Captcha == "" {
		return 0, errs.NewError(errs.ErrInvalidParams, "captcha must not be empty")
	}
	if input.UserType != client.UserTypeCustomer && input.UserType != client.UserTypeMerchant {
		return 0, errs.NewError(errs.ErrInvalidParams, "unknown user type")
	}

	resp, err := s.api.Register(ctx, &client.RegisterRequest{
		Target:     input.Target,
		TargetType: input.TargetType,
		Password:   input.Password,
		Captcha:    input.Captcha,
		CaptchaID:  input.CaptchaID,
		UserType:   input.UserType,
	})
	if err != nil {
		return 0, err
	}
	return resp.UserID, nil
}

// Login validates the credentials, authenticates against the backend, and on
// success stores the session fields and broadcasts the login state.
func (s *Service) Login(ctx context.Context, targetType int32, target, password string) error {
	if err := ValidateTarget(targetType, target); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}

	resp, err := s.api.Login(ctx, &client.LoginRequest{
		Target:     target,
		TargetType: targetType,
		Password:   password,
	})
	if err != nil {
		return err
	}

	return s.session.Login(resp.Token, resp.UserID, int(resp.UserType))
}

// Logout clears the session and broadcasts the logged-out state.
func (s *Service) Logout() {
	s.session.Logout()
}
