package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"contacts-api/internal/domain"
	"contacts-api/pkg/apperror"
	"contacts-api/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const (
	categoryInvalidID     = "Invalid contact ID"
	categoryMissingFields = "Missing required fields"
	categoryNotFound      = "Contact not found"
)

var (
	msgInvalidID     = "The ID must be a valid 24 character hex identifier"
	msgMissingFields = "All fields are required: " + strings.Join(domain.RequiredContactFields, ", ")
)

type contactUsecase struct {
	repo     domain.ContactRepository
	validate *validator.Validate
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(repo domain.ContactRepository, validate *validator.Validate) domain.ContactUsecase {
	return &contactUsecase{
		repo:     repo,
		validate: validate,
	}
}

func (uc *contactUsecase) List(ctx context.Context) ([]domain.Contact, error) {
	contacts, err := uc.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal("Internal server error while listing contacts", err)
	}
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	return contacts, nil
}

func (uc *contactUsecase) Get(ctx context.Context, id string) (*domain.Contact, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	contact, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, uc.mapRepoError(id, "Internal server error while fetching contact", err)
	}
	return contact, nil
}

func (uc *contactUsecase) Create(ctx context.Context, in domain.ContactInput) (string, error) {
	normalized, err := uc.normalize(in)
	if err != nil {
		return "", err
	}

	id, err := uc.repo.Create(ctx, normalized)
	if err != nil {
		return "", apperror.Internal("Internal server error while creating contact", err)
	}
	return id, nil
}

// Update replaces all five fields; there is no partial update.
func (uc *contactUsecase) Update(ctx context.Context, id string, in domain.ContactInput) error {
	id, err := canonicalID(id)
	if err != nil {
		return err
	}
	normalized, err := uc.normalize(in)
	if err != nil {
		return err
	}

	if err = uc.repo.Update(ctx, id, normalized); err != nil {
		return uc.mapRepoError(id, "Internal server error while updating contact", err)
	}
	return nil
}

func (uc *contactUsecase) Delete(ctx context.Context, id string) error {
	id, err := canonicalID(id)
	if err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return uc.mapRepoError(id, "Internal server error while deleting contact", err)
	}
	return nil
}

// normalize trims the input and then checks the required and notblank tags.
func (uc *contactUsecase) normalize(in domain.ContactInput) (domain.ContactInput, error) {
	normalized := in.Normalize()
	if err := uc.validate.Struct(normalized); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return domain.ContactInput{}, apperror.Internal("Internal server error while validating contact", err)
		}
		return domain.ContactInput{}, MissingFieldsError()
	}
	return normalized, nil
}

func (uc *contactUsecase) mapRepoError(id, category string, err error) error {
	if errors.Is(err, domain.ErrContactNotFound) {
		return apperror.NotFound(categoryNotFound, fmt.Sprintf("No contact exists with ID: %s", id))
	}
	return apperror.Internal(category, err)
}

// canonicalID returns the lower-case form of id so that every storage
// driver resolves upper- and lower-case spellings to the same record.
func canonicalID(id string) (string, error) {
	canonical, ok := validation.CanonicalObjectID(id)
	if !ok {
		return "", InvalidIDError()
	}
	return canonical, nil
}

// InvalidIDError is returned for identifiers that are not 24 hex characters.
func InvalidIDError() *apperror.AppError {
	appErr := apperror.BadRequest(categoryInvalidID, msgInvalidID)
	appErr.Err = domain.ErrInvalidContactID
	return appErr
}

// MissingFieldsError is returned when a body lacks any of the five contact fields.
func MissingFieldsError() *apperror.AppError {
	appErr := apperror.BadRequest(categoryMissingFields, msgMissingFields)
	appErr.Err = domain.ErrMissingFields
	return appErr
}
