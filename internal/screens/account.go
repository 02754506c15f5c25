package screens

import (
	"context"
	"fmt"

	"gym-buddy-bot/internal/apperrors"
)

var errNotLoggedIn = apperrors.NewPreconditionError("not_logged_in", "You are not logged in. Send /login first.")

func (r *Router) register(_ context.Context, d *Device, _ string) (Reply, error) {
	d.resetForm()
	d.state = StateRegisterEmail
	return Reply{Text: fmt.Sprintf("Let's create your account. What is your %s email?", r.emailSuffix)}, nil
}

func (r *Router) registerStep(ctx context.Context, d *Device, input string) (Reply, error) {
	switch d.state {
	case StateRegisterEmail:
		d.formEmail = input
		d.state = StateRegisterName
		return Reply{Text: "What is your name?"}, nil
	case StateRegisterName:
		d.formName = input
		d.state = StateRegisterPassword
		return Reply{Text: "Choose a password (at least 6 characters)."}, nil
	}

	email, name := d.formEmail, d.formName
	d.resetForm()
	if err := d.Session.Register(ctx, email, name, input); err != nil {
		return Reply{}, err
	}
	state, err := d.Session.Current(ctx)
	if err != nil {
		return Reply{}, err
	}
	d.Board.Rename(state.Name)

	return Reply{
		Text:    fmt.Sprintf("Account created. Welcome, %s!", state.Name),
		Buttons: [][]Button{{{Label: "Home", Command: "/home"}}},
	}, nil
}

func (r *Router) login(_ context.Context, d *Device, _ string) (Reply, error) {
	d.resetForm()
	d.state = StateLoginEmail
	return Reply{Text: "Email?"}, nil
}

func (r *Router) loginStep(ctx context.Context, d *Device, input string) (Reply, error) {
	if d.state == StateLoginEmail {
		d.formEmail = input
		d.state = StateLoginPassword
		return Reply{Text: "Password?"}, nil
	}

	email := d.formEmail
	d.resetForm()
	account, err := d.Session.Login(ctx, email, input)
	if err != nil {
		return Reply{}, err
	}
	d.Board.Rename(account.Name)

	return Reply{
		Text:    fmt.Sprintf("Welcome back, %s!", account.Name),
		Buttons: [][]Button{{{Label: "Home", Command: "/home"}}},
	}, nil
}

func (r *Router) cancel(_ context.Context, d *Device, _ string) (Reply, error) {
	d.resetForm()
	return Reply{Text: "Cancelled."}, nil
}

func (r *Router) logout(ctx context.Context, d *Device, _ string) (Reply, error) {
	if err := d.Session.Logout(ctx); err != nil {
		return Reply{}, err
	}
	d.Board.Rename("")
	return Reply{Text: "Logged out."}, nil
}

func (r *Router) whoami(ctx context.Context, d *Device, _ string) (Reply, error) {
	state, err := d.Session.Current(ctx)
	if err != nil {
		return Reply{}, err
	}
	if !state.Active() {
		return Reply{}, errNotLoggedIn
	}
	return Reply{Text: fmt.Sprintf("Logged in as %s (%s).", state.Name, state.Email)}, nil
}

func (r *Router) deleteAccount(ctx context.Context, d *Device, _ string) (Reply, error) {
	state, err := d.Session.Current(ctx)
	if err != nil {
		return Reply{}, err
	}
	if !state.Active() {
		return Reply{}, errNotLoggedIn
	}
	if err := d.Session.DeleteAccount(ctx, state.Email); err != nil {
		return Reply{}, err
	}
	d.Board.Rename("")
	return Reply{Text: "Your account has been deleted."}, nil
}
