package service_test

import (
	"context"
	"testing"
	"time"

	appsvc "github.com/Miraines/MoonyAndStarry/contacts-service/internal/app/contacts/service"
	authErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/contacts/dto"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/contacts/model"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/contacts/repo"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type contactRepoStub struct {
	contacts map[string]model.Contact

	lastLimit  int
	lastOffset int
	lastDays   int
}

func (r *contactRepoStub) CreateContact(_ context.Context, c model.Contact) (model.Contact, error) {
	for _, v := range r.contacts {
		if v.Email == c.Email || v.Phone == c.Phone {
			return model.Contact{}, authErrors.ErrAlreadyExists
		}
	}
	r.contacts[c.ID.String()] = c
	return c, nil
}
func (r *contactRepoStub) GetContact(_ context.Context, userID, id uuid.UUID) (model.Contact, error) {
	c, ok := r.contacts[id.String()]
	if !ok || c.UserID != userID {
		return model.Contact{}, authErrors.ErrNotFound
	}
	return c, nil
}
func (r *contactRepoStub) ListContacts(_ context.Context, userID uuid.UUID, limit, offset int) ([]model.Contact, error) {
	r.lastLimit, r.lastOffset = limit, offset
	var out []model.Contact
	for _, c := range r.contacts {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *contactRepoStub) SearchContacts(_ context.Context, userID uuid.UUID, f repo.Filter) ([]model.Contact, error) {
	r.lastLimit, r.lastOffset = f.Limit, f.Offset
	var out []model.Contact
	for _, c := range r.contacts {
		if c.UserID == userID && (f.Email == "" || c.Email == f.Email) {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *contactRepoStub) UpdateContact(_ context.Context, c model.Contact) (model.Contact, error) {
	old, ok := r.contacts[c.ID.String()]
	if !ok || old.UserID != c.UserID {
		return model.Contact{}, authErrors.ErrNotFound
	}
	r.contacts[c.ID.String()] = c
	return c, nil
}
func (r *contactRepoStub) DeleteContact(_ context.Context, userID, id uuid.UUID) error {
	c, ok := r.contacts[id.String()]
	if !ok || c.UserID != userID {
		return authErrors.ErrNotFound
	}
	delete(r.contacts, id.String())
	return nil
}
func (r *contactRepoStub) UpcomingBirthdays(_ context.Context, userID uuid.UUID, days int) ([]model.Contact, error) {
	r.lastDays = days
	return nil, nil
}

func newSvc() (appsvc.Service, *contactRepoStub) {
	stub := &contactRepoStub{contacts: make(map[string]model.Contact)}
	return appsvc.New(stub, validator.New()), stub
}

func validDTO() dto.ContactDTO {
	return dto.ContactDTO{
		FirstName:   "Alice",
		LastName:    "Morgan",
		Email:       "Alice@Example.com",
		Phone:       "0671234567",
		DateOfBirth: "1990-04-12",
	}
}

func TestCreate_NormalizesInput(t *testing.T) {
	svc, _ := newSvc()
	user := uuid.New()

	c, err := svc.Create(context.Background(), user, validDTO())
	require.NoError(t, err)
	require.Equal(t, user, c.UserID)
	require.Equal(t, "alice@example.com", c.Email)
	require.Equal(t, "+380671234567", c.Phone)
	require.Equal(t, time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), c.DateOfBirth)
	require.NotEqual(t, uuid.Nil, c.ID)
}

func TestCreate_PhoneForms(t *testing.T) {
	cases := map[string]string{
		"0671234567":      "+380671234567",
		"067-123-45-67":   "+380671234567",
		"(067) 123 45 67": "+380671234567",
		"+380671234567":   "+380671234567",
		"380671234567":    "+380671234567",
	}
	for raw, want := range cases {
		svc, _ := newSvc()
		in := validDTO()
		in.Phone = raw
		c, err := svc.Create(context.Background(), uuid.New(), in)
		require.NoError(t, err, raw)
		require.Equal(t, want, c.Phone, raw)
	}
}

func TestCreate_BadPhone(t *testing.T) {
	svc, _ := newSvc()
	for _, raw := range []string{"12345", "abcdefghij", "+49123456789012"} {
		in := validDTO()
		in.Phone = raw
		_, err := svc.Create(context.Background(), uuid.New(), in)
		require.True(t, authErrors.IsInvalidArgument(err), raw)
	}
}

func TestCreate_Invalid(t *testing.T) {
	svc, _ := newSvc()

	in := validDTO()
	in.FirstName = "Al" // below the minimum length
	_, err := svc.Create(context.Background(), uuid.New(), in)
	require.True(t, authErrors.IsInvalidArgument(err))

	in = validDTO()
	in.DateOfBirth = "12.04.1990"
	_, err = svc.Create(context.Background(), uuid.New(), in)
	require.True(t, authErrors.IsInvalidArgument(err))
}

func TestCreate_Duplicate(t *testing.T) {
	svc, _ := newSvc()
	user := uuid.New()

	_, err := svc.Create(context.Background(), user, validDTO())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), user, validDTO())
	require.True(t, authErrors.IsAlreadyExists(err))
}

func TestGetUpdateDelete_ScopedToOwner(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()
	owner, stranger := uuid.New(), uuid.New()

	c, err := svc.Create(ctx, owner, validDTO())
	require.NoError(t, err)

	_, err = svc.Get(ctx, stranger, c.ID)
	require.True(t, authErrors.IsNotFound(err))

	in := validDTO()
	in.FirstName = "Alicia"
	_, err = svc.Update(ctx, stranger, c.ID, in)
	require.True(t, authErrors.IsNotFound(err))

	updated, err := svc.Update(ctx, owner, c.ID, in)
	require.NoError(t, err)
	require.Equal(t, "Alicia", updated.FirstName)

	require.True(t, authErrors.IsNotFound(svc.Delete(ctx, stranger, c.ID)))
	require.NoError(t, svc.Delete(ctx, owner, c.ID))
	_, err = svc.Get(ctx, owner, c.ID)
	require.True(t, authErrors.IsNotFound(err))
}

func TestList_ClampsPagination(t *testing.T) {
	svc, stub := newSvc()
	ctx := context.Background()
	user := uuid.New()

	_, err := svc.List(ctx, user, 0, -5)
	require.NoError(t, err)
	require.Equal(t, 10, stub.lastLimit)
	require.Equal(t, 0, stub.lastOffset)

	_, err = svc.List(ctx, user, 9999, 20)
	require.NoError(t, err)
	require.Equal(t, 500, stub.lastLimit)
	require.Equal(t, 20, stub.lastOffset)
}

func TestSearch_ClampsLimit(t *testing.T) {
	svc, stub := newSvc()

	_, err := svc.Search(context.Background(), uuid.New(), repo.Filter{Email: "x@example.com", Limit: 3})
	require.NoError(t, err)
	require.Equal(t, 10, stub.lastLimit)
}

func TestUpcomingBirthdays_WeekWindow(t *testing.T) {
	svc, stub := newSvc()

	_, err := svc.UpcomingBirthdays(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Equal(t, 7, stub.lastDays)
}
