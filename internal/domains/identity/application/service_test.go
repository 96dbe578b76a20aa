package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laundromart/admin-api/internal/auth"
	activitydomain "github.com/laundromart/admin-api/internal/domains/activity/domain"
	"github.com/laundromart/admin-api/internal/domains/identity/domain"
	"github.com/laundromart/admin-api/internal/domains/identity/ports"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := f.users[email]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copy := *u
			return &copy, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (f *fakeUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	copy := *user
	f.users[user.Email] = &copy
	return &copy, nil
}

type fakeRecorder struct {
	entries []activitydomain.Activity
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, entry activitydomain.Activity) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func seedAdmin(t *testing.T, repo *fakeUserRepo) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	user := &domain.User{
		ID:           "admin-1",
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
	}
	_, err = repo.Save(context.Background(), user)
	require.NoError(t, err)
	return user
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	seedAdmin(t, repo)
	recorder := &fakeRecorder{}
	issuer := auth.NewIssuer("test-secret", time.Hour)
	svc := NewService(repo, issuer, recorder, nil)

	result, err := svc.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	assert.Equal(t, "admin-1", result.User.ID)

	claims, err := issuer.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "SUPER_ADMIN", claims.Role)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, activitydomain.TypeUserLogin, recorder.entries[0].Type)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	seedAdmin(t, repo)
	svc := NewService(repo, auth.NewIssuer("test-secret", time.Hour), nil, nil)

	_, err := svc.Login(context.Background(), "admin@example.com", "wrong")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "secret")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "", "")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedAdmin(t, repo)
	user.IsActive = false
	_, err := repo.Save(context.Background(), user)
	require.NoError(t, err)

	svc := NewService(repo, auth.NewIssuer("test-secret", time.Hour), nil, nil)
	_, err = svc.Login(context.Background(), "admin@example.com", "secret")
	require.ErrorIs(t, err, ports.ErrAccountDeactivated)
}

func TestLogin_ActivityFailureSwallowed(t *testing.T) {
	repo := newFakeUserRepo()
	seedAdmin(t, repo)
	recorder := &fakeRecorder{err: errors.New("audit store down")}
	svc := NewService(repo, auth.NewIssuer("test-secret", time.Hour), recorder, nil)

	result, err := svc.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}
