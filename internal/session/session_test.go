package session

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gym-buddy-bot/internal/apperrors"
	"gym-buddy-bot/internal/db"
	"gym-buddy-bot/internal/models"
)

func newManager(t *testing.T) (*Manager, *db.MemoryStore) {
	t.Helper()
	store := db.NewMemoryStore()
	return NewManager(store, "@queensu.ca", WithHashCost(bcrypt.MinCost)), store
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(t)

	require.NoError(t, m.Register(ctx, "a@queensu.ca", "Pat", "secret1"))

	var stored models.UserAccount
	require.NoError(t, db.GetJSON(ctx, store, "a@queensu.ca", &stored))
	assert.Equal(t, "Pat", stored.Name)
	assert.NotEqual(t, "secret1", stored.Password)

	state, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, State{Email: "a@queensu.ca", Name: "Pat"}, state)

	require.NoError(t, m.Logout(ctx))
	state, err = m.Current(ctx)
	require.NoError(t, err)
	assert.False(t, state.Active())

	account, err := m.Login(ctx, "a@queensu.ca", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Pat", account.Name)
	assert.Empty(t, account.Password)

	state, err = m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Pat", state.Name)
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	require.NoError(t, m.Register(ctx, "a@queensu.ca", "Pat", "secret1"))
	err := m.Register(ctx, "a@queensu.ca", "Other", "secret2")
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	require.NoError(t, m.Register(ctx, "a@queensu.ca", "Pat", "secret1"))
	require.NoError(t, m.Logout(ctx))

	_, err := m.Login(ctx, "a@queensu.ca", "wrong-pass")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = m.Login(ctx, "nobody@queensu.ca", "secret1")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	state, err := m.Current(ctx)
	require.NoError(t, err)
	assert.False(t, state.Active(), "failed logins must not touch the session")
}

func TestValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		person   string
		password string
		want     error
	}{
		{"wrong domain", "a@gmail.com", "Pat", "secret1", ErrInvalidEmail},
		{"wrong domain beats short password", "a@gmail.com", "Pat", "x", ErrInvalidEmail},
		{"suffix must be at the end", "a@queensu.ca.evil.com", "Pat", "secret1", ErrInvalidEmail},
		{"short password", "a@queensu.ca", "Pat", "12345", ErrInvalidPassword},
		{"missing name", "a@queensu.ca", "  ", "secret1", ErrNameRequired},
		{"bare suffix is accepted", "@queensu.ca", "Pat", "secret1", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store := newManager(t)
			err := m.Register(ctx, tt.email, tt.person, tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
			assert.Zero(t, store.Len(), "validation failures must not write")
		})
	}
}

func TestEmailMessageNamesSuffix(t *testing.T) {
	m, _ := newManager(t)
	_, err := m.Login(context.Background(), "a@gmail.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, "You must use a valid @queensu.ca email address.", err.Error())
}

func TestPasswordTooLong(t *testing.T) {
	m, _ := newManager(t)
	err := m.Register(context.Background(), "a@queensu.ca", "Pat", strings.Repeat("x", 80))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(t)

	assert.ErrorIs(t, m.DeleteAccount(ctx, "ghost@queensu.ca"), ErrAccountNotFound)

	require.NoError(t, m.Register(ctx, "b@queensu.ca", "Bo", "secret1"))
	require.NoError(t, m.Register(ctx, "a@queensu.ca", "Pat", "secret1"))

	// deleting another account leaves the current session alone
	require.NoError(t, m.DeleteAccount(ctx, "b@queensu.ca"))
	state, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@queensu.ca", state.Email)

	require.NoError(t, m.DeleteAccount(ctx, "a@queensu.ca"))
	state, err = m.Current(ctx)
	require.NoError(t, err)
	assert.False(t, state.Active())
	assert.Zero(t, store.Len())

	_, err = m.Login(ctx, "a@queensu.ca", "secret1")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestNewValidatorRejectsEmptyTag(t *testing.T) {
	_, err := newValidator("", "@queensu.ca")
	require.Error(t, err)

	v, err := newValidator(institutionalTag, "@queensu.ca")
	require.NoError(t, err)
	assert.NoError(t, v.Struct(credentials{Email: "pat@queensu.ca", Password: "secret1"}))
	assert.Error(t, v.Struct(credentials{Email: "pat@gmail.com", Password: "secret1"}))
}

func TestNewManagerRegistersEmailRule(t *testing.T) {
	assert.NotPanics(t, func() { NewManager(db.NewMemoryStore(), "@queensu.ca") })
}
