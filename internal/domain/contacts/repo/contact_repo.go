package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/contacts/model"
	"github.com/google/uuid"
)

// Filter narrows a contact search; zero-value fields are ignored.
type Filter struct {
	FirstName string
	LastName  string
	Email     string
	Limit     int
	Offset    int
}

type ContactRepo interface {
	CreateContact(ctx context.Context, c model.Contact) (model.Contact, error)

	GetContact(ctx context.Context, userID, id uuid.UUID) (model.Contact, error)

	ListContacts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Contact, error)

	SearchContacts(ctx context.Context, userID uuid.UUID, f Filter) ([]model.Contact, error)

	UpdateContact(ctx context.Context, c model.Contact) (model.Contact, error)

	DeleteContact(ctx context.Context, userID, id uuid.UUID) error

	// UpcomingBirthdays returns contacts whose birthday falls within the
	// next days days, including windows that wrap the year boundary.
	UpcomingBirthdays(ctx context.Context, userID uuid.UUID, days int) ([]model.Contact, error)
}
