package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Eursukkul/eticket/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate_SeedAdmin(t *testing.T) {
	s, _ := newTestStore(t, nil, Options{})
	ctx := context.Background()

	sess, err := s.Authenticate(ctx, "admin@eticket.com", "admin123", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "admin1", sess.ID)
	assert.Equal(t, models.RoleAdmin, sess.Role)

	s.Logout(ctx)
	sess, err = s.Authenticate(ctx, "admin@eticket.com", "admin123", models.RoleTraveler)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, sess)
	assert.Nil(t, s.CurrentSession())
}

func TestAuthenticate_FailureKeepsSession(t *testing.T) {
	s, _ := newTestStore(t, nil, Options{})
	ctx := context.Background()

	_, err := s.Authenticate(ctx, SeedAdminEmail, SeedAdminPassword, models.RoleAdmin)
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, SeedAdminEmail, "wrong", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Authenticate(ctx, "nobody@example.com", SeedAdminPassword, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NotNil(t, s.CurrentSession())
	assert.Equal(t, "admin1", s.CurrentSession().ID)
}

func TestRegister_ThenAuthenticateAsTraveler(t *testing.T) {
	s, pub := newTestStore(t, nil, Options{})
	ctx := context.Background()

	sess, err := s.Register(ctx, "Ravi", "ravi@example.com", "9000000002", "secret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTraveler, sess.Role)
	assert.Equal(t, sess, s.CurrentSession())
	assert.Equal(t, []string{EventAccountRegistered}, pub.keys())

	s.Logout(ctx)
	again, err := s.Authenticate(ctx, "ravi@example.com", "secret", models.RoleTraveler)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, again.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s, _ := newTestStore(t, nil, Options{})
	ctx := context.Background()

	_, err := s.Register(ctx, "Ravi", "ravi@example.com", "1", "a")
	require.NoError(t, err)
	s.Logout(ctx)
	before := len(s.accounts)

	sess, err := s.Register(ctx, "Other", "ravi@example.com", "2", "b")

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Nil(t, sess)
	assert.Len(t, s.accounts, before)
	assert.Nil(t, s.CurrentSession())

	_, err = s.Register(ctx, "Admin Clone", SeedAdminEmail, "3", "c")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_GeneratesDistinctIDs(t *testing.T) {
	s := NewStore(nil, nil, Options{})
	s.kv = &failingKV{}
	ctx := context.Background()

	a, err := s.Register(ctx, "A", "a@example.com", "1", "x")
	require.NoError(t, err)
	b, err := s.Register(ctx, "B", "b@example.com", "2", "y")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Contains(t, a.ID, "u-")
}

func TestSession_IsPersistedWithoutPassword(t *testing.T) {
	s, _ := newTestStore(t, nil, Options{})
	ctx := context.Background()

	_, err := s.Authenticate(ctx, SeedAdminEmail, SeedAdminPassword, models.RoleAdmin)
	require.NoError(t, err)

	raw, ok, err := s.kv.Get(ctx, KeySession)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"email":"admin@eticket.com"`)
	assert.NotContains(t, string(raw), "admin123")

	s.Logout(ctx)
	raw, _, _ = s.kv.Get(ctx, KeySession)
	assert.Equal(t, "null", string(raw))
}

func TestCurrentSession_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t, nil, Options{})
	_, err := s.Authenticate(context.Background(), SeedAdminEmail, SeedAdminPassword, models.RoleAdmin)
	require.NoError(t, err)

	s.CurrentSession().Name = "tampered"

	assert.Equal(t, "Admin", s.CurrentSession().Name)
}

func TestAccounts_HidePasswords(t *testing.T) {
	s, _ := newTestStore(t, nil, Options{})
	_, err := s.Register(context.Background(), "Asha", "asha@example.com", "9000000001", "secret")
	require.NoError(t, err)

	accounts := s.Accounts()

	require.Len(t, accounts, 2)
	assert.Equal(t, "admin1", accounts[0].ID)
	assert.Equal(t, models.RoleTraveler, accounts[1].Role)
	raw, err := json.Marshal(accounts)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}
