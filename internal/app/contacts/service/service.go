package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/contacts/dto"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/contacts/model"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/contacts/repo"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	birthdayWindowDays = 7

	minSearchLimit = 10
	maxSearchLimit = 500
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, in dto.ContactDTO) (model.Contact, error)

	Get(ctx context.Context, userID, id uuid.UUID) (model.Contact, error)

	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Contact, error)

	Search(ctx context.Context, userID uuid.UUID, f repo.Filter) ([]model.Contact, error)

	Update(ctx context.Context, userID, id uuid.UUID, in dto.ContactDTO) (model.Contact, error)

	Delete(ctx context.Context, userID, id uuid.UUID) error

	// UpcomingBirthdays returns contacts with a birthday in the next week.
	UpcomingBirthdays(ctx context.Context, userID uuid.UUID) ([]model.Contact, error)
}

type contactService struct {
	contacts repo.ContactRepo
	v        *validator.Validate
}

func New(contacts repo.ContactRepo, v *validator.Validate) Service {
	return &contactService{contacts: contacts, v: v}
}

func (s *contactService) Create(ctx context.Context, userID uuid.UUID, in dto.ContactDTO) (model.Contact, error) {
	c, err := s.toModel(userID, in)
	if err != nil {
		return model.Contact{}, err
	}
	c.ID = uuid.New()

	created, err := s.contacts.CreateContact(ctx, c)
	if err != nil {
		return model.Contact{}, err
	}
	return created, nil
}

func (s *contactService) Get(ctx context.Context, userID, id uuid.UUID) (model.Contact, error) {
	return s.contacts.GetContact(ctx, userID, id)
}

func (s *contactService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Contact, error) {
	limit = clampLimit(limit)
	if offset < 0 {
		offset = 0
	}
	return s.contacts.ListContacts(ctx, userID, limit, offset)
}

func (s *contactService) Search(ctx context.Context, userID uuid.UUID, f repo.Filter) ([]model.Contact, error) {
	f.Limit = clampLimit(f.Limit)
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.contacts.SearchContacts(ctx, userID, f)
}

func (s *contactService) Update(ctx context.Context, userID, id uuid.UUID, in dto.ContactDTO) (model.Contact, error) {
	c, err := s.toModel(userID, in)
	if err != nil {
		return model.Contact{}, err
	}
	c.ID = id

	updated, err := s.contacts.UpdateContact(ctx, c)
	if err != nil {
		return model.Contact{}, err
	}
	return updated, nil
}

func (s *contactService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.contacts.DeleteContact(ctx, userID, id)
}

func (s *contactService) UpcomingBirthdays(ctx context.Context, userID uuid.UUID) ([]model.Contact, error) {
	return s.contacts.UpcomingBirthdays(ctx, userID, birthdayWindowDays)
}

func (s *contactService) toModel(userID uuid.UUID, in dto.ContactDTO) (model.Contact, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Contact{}, customErrors.NewInvalidArgument(err.Error())
	}

	phone, err := normalizePhone(in.Phone)
	if err != nil {
		return model.Contact{}, err
	}

	dob, err := time.Parse(time.DateOnly, in.DateOfBirth)
	if err != nil {
		return model.Contact{}, customErrors.NewInvalidArgument("date_of_birth must be YYYY-MM-DD")
	}

	return model.Contact{
		UserID:      userID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       strings.ToLower(in.Email),
		Phone:       phone,
		DateOfBirth: dob,
	}, nil
}

func clampLimit(limit int) int {
	switch {
	case limit < minSearchLimit:
		return minSearchLimit
	case limit > maxSearchLimit:
		return maxSearchLimit
	default:
		return limit
	}
}

// normalizePhone accepts a bare 10-digit local number and stores it in the
// +38XXXXXXXXXX form. Separators and an existing +38 prefix are tolerated.
func normalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			digits.WriteRune(r)
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", customErrors.NewInvalidArgument("phone contains invalid characters")
		}
	}

	d := digits.String()
	switch {
	case len(d) == 10:
		return "+38" + d, nil
	case len(d) == 12 && strings.HasPrefix(d, "38"):
		return "+" + d, nil
	default:
		return "", customErrors.NewInvalidArgument("phone must be a 10 digit number")
	}
}
