/*
Package cli renders the storefront as an interactive terminal session.

The screens mirror the storefront's pages: an auth screen while logged out,
then a role-appropriate home screen (merchant management or customer
browsing) plus the shared order listing. Navigation state lives in this
package only; all data comes from the app services per interaction.
*/
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/app/account"
	"storefront/internal/app/catalog"
	"storefront/internal/app/order"
	"storefront/internal/app/session"
	"storefront/internal/client"
	"storefront/internal/pkg/auth/claims"
	"storefront/internal/pkg/errs"
)

// App wires the storefront services to a terminal.
type App struct {
	api      *client.Client
	session  *session.Synchronizer
	accounts *account.Service
	catalog  *catalog.Service
	drafts   *order.Registry

	in  *bufio.Scanner
	out io.Writer
}

// NewApp builds the terminal front end over the given services.
func NewApp(api *client.Client, sync *session.Synchronizer, accounts *account.Service, cat *catalog.Service, in io.Reader, out io.Writer) *App {
	return &App{
		api:      api,
		session:  sync,
		accounts: accounts,
		catalog:  cat,
		drafts:   order.NewRegistry(),
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run drives the top-level screen loop until ctx is cancelled or input ends.
// A session listener announces login-state transitions, including those
// detected by the poll (e.g. a logout performed by another process).
func (a *App) Run(ctx context.Context) error {
	unsubscribe := a.session.Subscribe(func(loggedIn bool) {
		if loggedIn {
			a.printf("\n[session] logged in\n")
		} else {
			a.printf("\n[session] logged out\n")
		}
	})
	defer unsubscribe()

	for ctx.Err() == nil {
		if !a.session.IsLoggedIn() {
			if !a.authScreen(ctx) {
				return ctx.Err()
			}
			continue
		}

		payload := claims.Decode(a.session.Token())
		if !payload.HasIdentity() {
			// Stale or mangled token: clear it and fall back to login.
			a.printf("Session is no longer valid, please log in again.\n")
			a.session.Logout()
			continue
		}

		if !a.homeScreen(ctx, payload) {
			return ctx.Err()
		}
	}
	return ctx.Err()
}

// homeScreen shows the role-appropriate menu. It returns false when input is
// exhausted.
func (a *App) homeScreen(ctx context.Context, payload *claims.Payload) bool {
	role := "customer"
	if payload.IsMerchant() {
		role = "merchant"
	}
	a.printf("\n=== Storefront (user %d, %s) ===\n", payload.UserID, role)
	if payload.IsMerchant() {
		a.printf("  1) manage products\n")
	} else {
		a.printf("  1) browse and order\n")
	}
	a.printf("  2) my orders\n  3) log out\n  q) quit\n")

	choice, ok := a.prompt("> ")
	if !ok {
		return false
	}

	switch choice {
	case "1":
		if payload.IsMerchant() {
			a.merchantScreen(ctx, payload.UserID)
		} else {
			a.customerScreen(ctx)
		}
	case "2":
		a.ordersScreen(ctx, payload)
	case "3":
		a.session.Logout()
	case "q":
		return false
	default:
		a.printf("Unknown choice %q.\n", choice)
	}
	return true
}

// prompt prints a label and reads one trimmed line. ok is false when the
// input stream has ended.
func (a *App) prompt(label string) (value string, ok bool) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// promptInt reads one line as a base-10 integer, re-prompting on bad input.
func (a *App) promptInt(label string) (int64, bool) {
	for {
		value, ok := a.prompt(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return n, true
		}
		a.printf("Please enter a number.\n")
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// reportErr prints an error the way the flow's taxonomy expects: validation
// and application errors carry their own user-facing message, identity errors
// additionally clear the session.
func (a *App) reportErr(err error) {
	customErr, ok := err.(*errs.CustomError)
	if !ok {
		a.printf("Unexpected error: %v\n", err)
		return
	}

	a.printf("%s\n", customErr.Message)
	if customErr.Kind == errs.KindIdentity {
		a.session.Logout()
	}
}
