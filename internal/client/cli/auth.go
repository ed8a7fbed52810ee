package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/mindmate-client/internal/common"
	"github.com/fatih/color"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username and password and creates an account.
// On success the new session is stored and the password is wiped.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	creds, err := a.authService.Register(ctx, userName, password)
	if err != nil {
		a.say(color.FgRed, "Registration failed: %v", err)
		return err
	}

	a.say(color.FgGreen, "Registered as %s", creds.Username)
	return nil
}

// Login prompts for an email or username and a password, then signs in.
func (a *App) Login(ctx context.Context) error {
	loginID, err := getSimpleText(a.reader, "Enter email or username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	creds, err := a.authService.Login(ctx, loginID, password)
	if err != nil {
		if errors.Is(err, common.ErrUnavailable) {
			a.say(color.FgYellow, "Server unavailable, try again later")
		} else {
			a.say(color.FgRed, "Login unsuccessful: %v", err)
		}
		return err
	}

	a.say(color.FgGreen, "Logged in as %s", creds.Username)
	return nil
}

// Check asks the server whether the stored session is still valid.
func (a *App) Check(ctx context.Context) error {
	if a.authService.CheckAuth(ctx) {
		a.say(color.FgGreen, "authenticated")
	} else {
		a.say(color.FgYellow, "not authenticated")
	}
	return nil
}

// Whoami prints the stored session identifiers.
func (a *App) Whoami(ctx context.Context) error {
	id, err := a.authService.Whoami(ctx)
	if err != nil {
		a.say(color.FgRed, "Reading session failed: %v", err)
		return err
	}

	if id.Username == "" && id.UserID == "" {
		a.say(color.FgYellow, "not logged in")
		return nil
	}

	a.say(color.Reset, "%s (id %s)", id.Username, id.UserID)
	return nil
}

// Logout ends the session. It always succeeds and leaves the user on /login.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	a.say(color.FgGreen, "Logged out")
	return nil
}
