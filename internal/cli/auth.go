package cli

import (
	"context"

	"storefront/internal/app/account"
	"storefront/internal/client"
)

// authScreen is shown while no session is active. It returns false when
// input is exhausted.
func (a *App) authScreen(ctx context.Context) bool {
	a.printf("\n=== Storefront — not logged in ===\n  1) log in\n  2) register\n  q) quit\n")

	choice, ok := a.prompt("> ")
	if !ok {
		return false
	}

	switch choice {
	case "1":
		return a.loginPrompt(ctx)
	case "2":
		return a.registerPrompt(ctx)
	case "q":
		return false
	default:
		a.printf("Unknown choice %q.\n", choice)
	}
	return true
}

// promptTargetType asks for the account type and maps it to the wire enum.
func (a *App) promptTargetType() (int32, bool) {
	for {
		choice, ok := a.prompt("Account type (1=phone, 2=email): ")
		if !ok {
			return 0, false
		}
		switch choice {
		case "1":
			return client.TargetTypePhone, true
		case "2":
			return client.TargetTypeEmail, true
		}
		a.printf("Please choose 1 or 2.\n")
	}
}

func (a *App) loginPrompt(ctx context.Context) bool {
	targetType, ok := a.promptTargetType()
	if !ok {
		return false
	}
	target, ok := a.prompt("Phone/email: ")
	if !ok {
		return false
	}
	password, ok := a.prompt("Password: ")
	if !ok {
		return false
	}

	if err := a.accounts.Login(ctx, targetType, target, password); err != nil {
		a.reportErr(err)
		return true
	}

	a.printf("Login successful.\n")
	return true
}

func (a *App) registerPrompt(ctx context.Context) bool {
	targetType, ok := a.promptTargetType()
	if !ok {
		return false
	}
	target, ok := a.prompt("Phone/email: ")
	if !ok {
		return false
	}
	password, ok := a.prompt("Password (6-50 characters): ")
	if !ok {
		return false
	}

	roleChoice, ok := a.prompt("Register as (1=customer, 2=merchant): ")
	if !ok {
		return false
	}
	userType := client.UserTypeCustomer
	if roleChoice == "2" {
		userType = client.UserTypeMerchant
	}

	captchaID, err := a.accounts.RequestCaptcha(ctx, targetType, target)
	if err != nil {
		a.reportErr(err)
		return true
	}
	a.printf("A captcha has been sent to %s.\n", target)

	captcha, ok := a.prompt("Captcha code: ")
	if !ok {
		return false
	}

	userID, err := a.accounts.Register(ctx, account.RegisterInput{
		TargetType: targetType,
		Target:     target,
		Password:   password,
		Captcha:    captcha,
		CaptchaID:  captchaID,
		UserType:   userType,
	})
	if err != nil {
		a.reportErr(err)
		return true
	}

	a.printf("Registration successful (user id %d). You can log in now.\n", userID)
	return true
}
