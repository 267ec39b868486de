package user_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/coffrefort/internal/entitlement"
	"github.com/magabrotheeeer/coffrefort/internal/models"
	"github.com/magabrotheeeer/coffrefort/internal/services/user"
	"github.com/magabrotheeeer/coffrefort/internal/storage/repository"
)

// Мок для Repository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]*models.User)
	return res, args.Error(1)
}

func (m *UserRepoMock) ActivatePremium(ctx context.Context, id int64, expiresAt time.Time) error {
	args := m.Called(ctx, id, expiresAt)
	return args.Error(0)
}

func (m *UserRepoMock) Deactivate(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserRepoMock) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_Activate(t *testing.T) {
	t.Run("grants premium for the standard term from now", func(t *testing.T) {
		repoMock := new(UserRepoMock)
		repoMock.On("ActivatePremium", mock.Anything, int64(7),
			mock.MatchedBy(func(expiresAt time.Time) bool {
				expected := time.Now().UTC().Add(entitlement.PremiumTerm)
				return expiresAt.Sub(expected).Abs() < time.Minute
			})).Return(nil).Once()

		service := user.New(repoMock, newNoopLogger())
		assert.NoError(t, service.Activate(context.Background(), 7))
		repoMock.AssertExpectations(t)
	})

	t.Run("unknown user error is passed through", func(t *testing.T) {
		repoMock := new(UserRepoMock)
		repoMock.On("ActivatePremium", mock.Anything, int64(9), mock.Anything).
			Return(repository.ErrUserNotFound).Once()

		service := user.New(repoMock, newNoopLogger())
		assert.ErrorIs(t, service.Activate(context.Background(), 9), repository.ErrUserNotFound)
	})
}

func TestService_Deactivate(t *testing.T) {
	repoMock := new(UserRepoMock)
	repoMock.On("Deactivate", mock.Anything, int64(7)).Return(nil).Once()

	service := user.New(repoMock, newNoopLogger())
	assert.NoError(t, service.Deactivate(context.Background(), 7))
	repoMock.AssertExpectations(t)
}

func TestService_Delete(t *testing.T) {
	repoMock := new(UserRepoMock)
	repoMock.On("DeleteUser", mock.Anything, int64(7)).Return(nil).Once()

	service := user.New(repoMock, newNoopLogger())
	assert.NoError(t, service.Delete(context.Background(), 7))
	repoMock.AssertExpectations(t)
}

func TestService_List(t *testing.T) {
	repoMock := new(UserRepoMock)
	rows := []*models.User{{ID: 2, Email: "b@example.com"}, {ID: 1, Email: "a@example.com"}}
	repoMock.On("ListUsers", mock.Anything).Return(rows, nil).Once()

	service := user.New(repoMock, newNoopLogger())
	got, err := service.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, rows, got)
}
