package account_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/app/account"
	"storefront/internal/app/session"
	"storefront/internal/client"
	"storefront/internal/client/clienttest"
	"storefront/internal/pkg/errs"
)

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		name       string
		targetType int32
		target     string
		wantErr    bool
	}{
		{"valid phone", client.TargetTypePhone, "13812345678", false},
		{"phone too short", client.TargetTypePhone, "1381234567", true},
		{"phone bad prefix", client.TargetTypePhone, "12812345678", true},
		{"phone with letters", client.TargetTypePhone, "1381234567a", true},
		{"empty phone", client.TargetTypePhone, "", true},
		{"valid email", client.TargetTypeEmail, "user@example.com", false},
		{"email with dots", client.TargetTypeEmail, "first.last@mail.example.co", false},
		{"email without at", client.TargetTypeEmail, "user.example.com", true},
		{"email without tld", client.TargetTypeEmail, "user@example", true},
		{"empty email", client.TargetTypeEmail, "", true},
		{"unknown type", 9, "user@example.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := account.ValidateTarget(tt.targetType, tt.target)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.IsKind(err, errs.KindValidation))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, account.ValidatePassword("abcdef"))
	require.NoError(t, account.ValidatePassword("密码密码密码"), "length counts runes, not bytes")

	require.Error(t, account.ValidatePassword("abcde"))
	require.Error(t, account.ValidatePassword(""))

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	require.Error(t, account.ValidatePassword(string(long)))
}

func TestRegisterValidation(t *testing.T) {
	// No backend is needed: every case must fail before the network.
	svc := account.NewService(nil, session.NewSynchronizer(session.NewMemoryStore(), 0))
	ctx := context.Background()

	base := account.RegisterInput{
		TargetType: client.TargetTypeEmail,
		Target:     "user@example.com",
		Password:   "secret123",
		Captcha:    "123456",
		CaptchaID:  "cap-1",
		UserType:   client.UserTypeCustomer,
	}

	t.Run("empty captcha", func(t *testing.T) {
		input := base
		input.Captcha = ""
		_, err := svc.Register(ctx, input)
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindValidation))
	})

	t.Run("unknown user type", func(t *testing.T) {
		input := base
		input.UserType = 9
		_, err := svc.Register(ctx, input)
		require.Error(t, err)
	})

	t.Run("short password", func(t *testing.T) {
		input := base
		input.Password = "abc"
		_, err := svc.Register(ctx, input)
		require.Error(t, err)
	})
}

func TestAuthFlow(t *testing.T) {
	server := clienttest.NewServer()
	defer server.Close()
	ctx := context.Background()

	api := client.New(client.Config{BaseURL: server.URL})
	sync := session.NewSynchronizer(session.NewMemoryStore(), 0)
	svc := account.NewService(api, sync)

	captchaID, err := svc.RequestCaptcha(ctx, client.TargetTypePhone, "13812345678")
	require.NoError(t, err)
	require.NotEmpty(t, captchaID)

	userID, err := svc.Register(ctx, account.RegisterInput{
		TargetType: client.TargetTypePhone,
		Target:     "13812345678",
		Password:   "secret123",
		Captcha:    server.CaptchaCode(captchaID),
		CaptchaID:  captchaID,
		UserType:   client.UserTypeMerchant,
	})
	require.NoError(t, err)
	require.NotZero(t, userID)

	// Registration alone does not log in.
	assert.False(t, sync.IsLoggedIn())

	t.Run("wrong password leaves the session untouched", func(t *testing.T) {
		err := svc.Login(ctx, client.TargetTypePhone, "13812345678", "wrongpass")
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindApplication))
		assert.False(t, sync.IsLoggedIn())
	})

	t.Run("login stores the session and logout clears it", func(t *testing.T) {
		require.NoError(t, svc.Login(ctx, client.TargetTypePhone, "13812345678", "secret123"))
		assert.True(t, sync.IsLoggedIn())
		assert.NotEmpty(t, sync.Token())

		svc.Logout()
		assert.False(t, sync.IsLoggedIn())
		assert.Empty(t, sync.Token())
	})

	t.Run("duplicate registration is rejected", func(t *testing.T) {
		againID, err := svc.RequestCaptcha(ctx, client.TargetTypePhone, "13812345678")
		require.NoError(t, err)

		_, err = svc.Register(ctx, account.RegisterInput{
			TargetType: client.TargetTypePhone,
			Target:     "13812345678",
			Password:   "secret123",
			Captcha:    server.CaptchaCode(againID),
			CaptchaID:  againID,
			UserType:   client.UserTypeMerchant,
		})
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindApplication))
	})
}
