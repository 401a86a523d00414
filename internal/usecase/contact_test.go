package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"contacts-api/internal/domain"
	"contacts-api/internal/usecase"
	"contacts-api/pkg/apperror"
	"contacts-api/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repository
type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) List(ctx context.Context) ([]domain.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

func (m *MockContactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactRepo) Create(ctx context.Context, in domain.ContactInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockContactRepo) Update(ctx context.Context, id string, in domain.ContactInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockContactRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockContactRepo) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

const validID = "507f1f77bcf86cd799439011"

func newUsecase(repo domain.ContactRepository) domain.ContactUsecase {
	v := validator.New()
	validation.RegisterValidators(v)
	return usecase.NewContactUsecase(repo, v)
}

func requireAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func rawInput() domain.ContactInput {
	return domain.ContactInput{
		FirstName:     " Juan ",
		LastName:      "Perez",
		Email:         " Juan@X.com",
		FavoriteColor: "azul ",
		Birthday:      "1990-05-15",
	}
}

func normalizedInput() domain.ContactInput {
	return domain.ContactInput{
		FirstName:     "Juan",
		LastName:      "Perez",
		Email:         "juan@x.com",
		FavoriteColor: "azul",
		Birthday:      "1990-05-15",
	}
}

func TestContactList(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return empty slice for empty collection", func(t *testing.T) {
		repo := new(MockContactRepo)
		repo.On("List", ctx).Return(nil, nil)

		contacts, err := newUsecase(repo).List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, contacts)
		assert.Empty(t, contacts)
	})

	t.Run("Should map storage failure to 500", func(t *testing.T) {
		repo := new(MockContactRepo)
		repo.On("List", ctx).Return(nil, domain.StorageError(errors.New("socket closed")))

		_, err := newUsecase(repo).List(ctx)
		appErr := requireAppError(t, err, http.StatusInternalServerError)
		assert.Contains(t, appErr.Message, "socket closed")
	})
}

func TestContactGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject malformed id without touching storage", func(t *testing.T) {
		repo := new(MockContactRepo)

		_, err := newUsecase(repo).Get(ctx, "abc")
		requireAppError(t, err, http.StatusBadRequest)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Should return 404 when not found", func(t *testing.T) {
		repo := new(MockContactRepo)
		repo.On("GetByID", ctx, validID).Return(nil, domain.ErrContactNotFound)

		_, err := newUsecase(repo).Get(ctx, validID)
		appErr := requireAppError(t, err, http.StatusNotFound)
		assert.Contains(t, appErr.Message, validID)
	})

	t.Run("Should return contact", func(t *testing.T) {
		repo := new(MockContactRepo)
		want := normalizedInput().ToContact(validID)
		repo.On("GetByID", ctx, validID).Return(want, nil)

		got, err := newUsecase(repo).Get(ctx, validID)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Should pass the lower-case id to storage", func(t *testing.T) {
		repo := new(MockContactRepo)
		want := normalizedInput().ToContact(validID)
		repo.On("GetByID", ctx, validID).Return(want, nil)

		got, err := newUsecase(repo).Get(ctx, strings.ToUpper(validID))
		require.NoError(t, err)
		assert.Equal(t, want, got)
		repo.AssertExpectations(t)
	})

	t.Run("Should map storage failure to 500", func(t *testing.T) {
		repo := new(MockContactRepo)
		repo.On("GetByID", ctx, validID).Return(nil, domain.StorageError(errors.New("timeout")))

		_, err := newUsecase(repo).Get(ctx, validID)
		requireAppError(t, err, http.StatusInternalServerError)
	})
}

func TestContactCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should normalize before insert", func(t *testing.T) {
		repo := new(MockContactRepo)
		repo.On("Create", ctx, normalizedInput()).Return(validID, nil)

		id, err := newUsecase(repo).Create(ctx, rawInput())
		require.NoError(t, err)
		assert.Equal(t, validID, id)
		repo.AssertExpectations(t)
	})

	t.Run("Should reject each missing field", func(t *testing.T) {
		blank := []func(*domain.ContactInput){
			func(in *domain.ContactInput) { in.FirstName = "" },
			func(in *domain.ContactInput) { in.LastName = "" },
			func(in *domain.ContactInput) { in.Email = "" },
			func(in *domain.ContactInput) { in.FavoriteColor = "" },
			func(in *domain.ContactInput) { in.Birthday = "   " },
		}
		for _, blankOut := range blank {
			repo := new(MockContactRepo)
			in := rawInput()
			blankOut(&in)

			_, err := newUsecase(repo).Create(ctx, in)
			appErr := requireAppError(t, err, http.StatusBadRequest)
			assert.ErrorIs(t, appErr, domain.ErrMissingFields)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		}
	})

	t.Run("Should map storage failure to 500", func(t *testing.T) {
		repo := new(MockContactRepo)
		repo.On("Create", ctx, normalizedInput()).Return("", domain.StorageError(errors.New("not primary")))

		_, err := newUsecase(repo).Create(ctx, rawInput())
		requireAppError(t, err, http.StatusInternalServerError)
	})
}

func TestContactUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should validate id before body", func(t *testing.T) {
		repo := new(MockContactRepo)

		err := newUsecase(repo).Update(ctx, "abc", domain.ContactInput{})
		appErr := requireAppError(t, err, http.StatusBadRequest)
		assert.ErrorIs(t, appErr, domain.ErrInvalidContactID)
	})

	t.Run("Should reject missing fields", func(t *testing.T) {
		repo := new(MockContactRepo)

		err := newUsecase(repo).Update(ctx, validID, domain.ContactInput{FirstName: "Juan"})
		appErr := requireAppError(t, err, http.StatusBadRequest)
		assert.ErrorIs(t, appErr, domain.ErrMissingFields)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should replace all fields", func(t *testing.T) {
		repo := new(MockContactRepo)
		repo.On("Update", ctx, validID, normalizedInput()).Return(nil)

		require.NoError(t, newUsecase(repo).Update(ctx, validID, rawInput()))
		repo.AssertExpectations(t)
	})

	t.Run("Should return 404 when nothing matched", func(t *testing.T) {
		repo := new(MockContactRepo)
		repo.On("Update", ctx, validID, normalizedInput()).Return(domain.ErrContactNotFound)

		err := newUsecase(repo).Update(ctx, validID, rawInput())
		requireAppError(t, err, http.StatusNotFound)
	})
}

func TestContactDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject malformed id", func(t *testing.T) {
		repo := new(MockContactRepo)

		err := newUsecase(repo).Delete(ctx, "507f1f77bcf86cd79943901z")
		requireAppError(t, err, http.StatusBadRequest)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Should return 404 when nothing deleted", func(t *testing.T) {
		repo := new(MockContactRepo)
		repo.On("Delete", ctx, validID).Return(domain.ErrContactNotFound)

		err := newUsecase(repo).Delete(ctx, validID)
		requireAppError(t, err, http.StatusNotFound)
	})

	t.Run("Should delete", func(t *testing.T) {
		repo := new(MockContactRepo)
		repo.On("Delete", ctx, validID).Return(nil)

		assert.NoError(t, newUsecase(repo).Delete(ctx, validID))
	})
}

func TestHealthCheck(t *testing.T) {
	t.Run("Should report storage down", func(t *testing.T) {
		repo := new(MockContactRepo)
		repo.On("Ping", mock.Anything).Return(domain.StorageError(errors.New("no reachable servers")))

		status, healthy := usecase.NewHealthUsecase(repo, nil).Check(context.Background())
		assert.False(t, healthy)
		assert.Equal(t, "down", status["storage"])
		assert.Equal(t, "disabled", status["redis"])
	})

	t.Run("Should report ok", func(t *testing.T) {
		repo := new(MockContactRepo)
		repo.On("Ping", mock.Anything).Return(nil)

		status, healthy := usecase.NewHealthUsecase(repo, nil).Check(context.Background())
		assert.True(t, healthy)
		assert.Equal(t, "ok", status["status"])
	})
}
