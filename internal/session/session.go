// Package session implements account registration and the device's
// logged-in user pointer on top of the key-value store.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"gym-buddy-bot/internal/apperrors"
	"gym-buddy-bot/internal/db"
	"gym-buddy-bot/internal/models"
)

// Well-known keys holding the session pointer.
const (
	KeyCurrentEmail = "currentUserEmail"
	KeyCurrentName  = "currentUserName"
)

const MinPasswordLength = 6

var (
	ErrAlreadyExists   = apperrors.NewConflictError("account_exists", "User already exists. Try logging in.")
	ErrAccountNotFound = apperrors.NewNotFoundError("account").WithMessage("User not found. Please register.")
	ErrWrongPassword   = &apperrors.Error{Kind: apperrors.KindValidation, Code: "wrong_password", Message: "Incorrect password. Try again."}
	ErrInvalidPassword = apperrors.NewValidationError("password", fmt.Sprintf("Password must be at least %d characters.", MinPasswordLength))
	ErrPasswordTooLong = &apperrors.Error{Kind: apperrors.KindValidation, Code: "password_too_long", Message: "Password must be at most 72 bytes."}
	ErrNameRequired    = apperrors.NewValidationError("name", "Name is required.")
	ErrInvalidEmail    = apperrors.NewValidationError("email", "You must use a valid institutional email address.")
)

// State is the explicit session context handed to every screen.
type State struct {
	Email string
	Name  string
}

// Active reports whether a user is logged in.
func (s State) Active() bool {
	return s.Email != ""
}

type credentials struct {
	Email    string `validate:"institutional"`
	Password string `validate:"min=6"`
}

type registration struct {
	Email    string `validate:"institutional"`
	Password string `validate:"min=6"`
	Name     string `validate:"required"`
}

type Manager struct {
	store    db.Store
	validate *validator.Validate
	suffix   string
	cost     int
}

type Option func(*Manager)

// WithHashCost overrides the bcrypt cost.
func WithHashCost(cost int) Option {
	return func(m *Manager) { m.cost = cost }
}

const institutionalTag = "institutional"

// newValidator returns a validator where tag accepts strings ending in suffix.
func newValidator(tag, suffix string) (*validator.Validate, error) {
	v := validator.New()
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return strings.HasSuffix(fl.Field().String(), suffix)
	})
	if err != nil {
		return nil, fmt.Errorf("register %q validation: %w", tag, err)
	}
	return v, nil
}

// NewManager creates a session manager accepting emails ending in emailSuffix.
func NewManager(store db.Store, emailSuffix string, opts ...Option) *Manager {
	validate, err := newValidator(institutionalTag, emailSuffix)
	if err != nil {
		panic(err)
	}
	m := &Manager{
		store:    store,
		validate: validate,
		suffix:   emailSuffix,
		cost:     bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register creates an account and logs it in.
func (m *Manager) Register(ctx context.Context, email, name, password string) error {
	if err := m.check(registration{Email: email, Password: password, Name: strings.TrimSpace(name)}); err != nil {
		return err
	}

	_, err := m.account(ctx, email)
	switch {
	case err == nil:
		return ErrAlreadyExists
	case !errors.Is(err, ErrAccountNotFound):
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return ErrPasswordTooLong
	}
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	name = strings.TrimSpace(name)
	values, err := db.EncodeAll(map[string]any{
		email:           models.UserAccount{Email: email, Name: name, Password: string(hash)},
		KeyCurrentEmail: email,
		KeyCurrentName:  name,
	})
	if err != nil {
		return err
	}
	if err := m.store.SetMany(ctx, values); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// Login checks the credentials and points the session at the account.
// The returned account carries no password.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.UserAccount, error) {
	if err := m.check(credentials{Email: email, Password: password}); err != nil {
		return nil, err
	}

	account, err := m.account(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return nil, ErrWrongPassword
	}

	values, err := db.EncodeAll(map[string]any{
		KeyCurrentEmail: account.Email,
		KeyCurrentName:  account.Name,
	})
	if err != nil {
		return nil, err
	}
	if err := m.store.SetMany(ctx, values); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	account.Password = ""
	return account, nil
}

// Logout clears the session pointer.
func (m *Manager) Logout(ctx context.Context) error {
	return m.store.Delete(ctx, KeyCurrentEmail, KeyCurrentName)
}

// DeleteAccount removes the account. The session pointer is cleared when it
// points at the deleted account.
func (m *Manager) DeleteAccount(ctx context.Context, email string) error {
	if _, err := m.account(ctx, email); err != nil {
		return err
	}

	current, err := m.Current(ctx)
	if err != nil {
		return err
	}

	keys := []string{email}
	if current.Email == email {
		keys = append(keys, KeyCurrentEmail, KeyCurrentName)
	}
	return m.store.Delete(ctx, keys...)
}

// Current returns the session state. A device nobody logged in on returns
// the zero State.
func (m *Manager) Current(ctx context.Context) (State, error) {
	var s State
	if err := db.GetJSON(ctx, m.store, KeyCurrentEmail, &s.Email); err != nil && !errors.Is(err, db.ErrNotFound) {
		return State{}, err
	}
	if err := db.GetJSON(ctx, m.store, KeyCurrentName, &s.Name); err != nil && !errors.Is(err, db.ErrNotFound) {
		return State{}, err
	}
	return s, nil
}

func (m *Manager) account(ctx context.Context, email string) (*models.UserAccount, error) {
	var account models.UserAccount
	err := db.GetJSON(ctx, m.store, email, &account)
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// check maps the first failed rule to a user-facing error.
func (m *Manager) check(input any) error {
	err := m.validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch verrs[0].Field() {
	case "Email":
		return ErrInvalidEmail.WithMessage(fmt.Sprintf("You must use a valid %s email address.", m.suffix))
	case "Password":
		return ErrInvalidPassword
	default:
		return ErrNameRequired
	}
}
