package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/finkeeper/internal/auth"
	"github.com/dmitrijs2005/finkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the sign-up fields and attempts to create an account.
// On success the user is signed in immediately and greeted; on failure the
// reason from the auth core is shown. The password bytes are wiped before
// returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone (optional)", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	result := a.authService.Register(ctx, auth.RegisterInput{
		Name:     name,
		Email:    email,
		Password: string(password),
		Phone:    phone,
	})
	if !result.Success {
		printlnFn("Registration failed:", result.Message)
		return nil
	}

	printlnFn("Welcome,", result.Session.Name)
	return nil
}

// Login prompts for credentials and tries to authenticate.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	result := a.authService.Login(ctx, email, string(password))
	if !result.Success {
		printlnFn("Login failed:", result.Message)
		return nil
	}

	printlnFn("Welcome back,", result.Session.Name)
	return nil
}

// Logout clears the persisted session and returns the app to anonymous state.
func (a *App) Logout(ctx context.Context) error {
	result := a.authService.Logout(ctx)
	if !result.Success {
		printlnFn("Logout problem:", result.Message)
		return nil
	}
	printlnFn("Logged out")
	return nil
}

// WhoAmI prints the active session profile.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.authService.CurrentSession()
	if s == nil {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn("id:", s.ID)
	printlnFn("name:", s.Name)
	printlnFn("email:", s.Email)
	printlnFn("role:", string(s.Role))
	return nil
}
