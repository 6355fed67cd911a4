package postgres

import (
	"context"
	"errors"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/contacts/model"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/contacts/repo"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

func (p *ContactRepo) CreateContact(ctx context.Context, c model.Contact) (model.Contact, error) {
	res := p.db.WithContext(ctx).Create(&c)
	if err := res.Error; err != nil {
		if isUniqueViolation(err) {
			return model.Contact{}, customErrors.ErrAlreadyExists
		}
		return model.Contact{}, customErrors.WrapInternal(err, "CreateContact")
	}
	return c, nil
}

func (p *ContactRepo) GetContact(ctx context.Context, userID, id uuid.UUID) (model.Contact, error) {
	var c model.Contact
	res := p.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&c)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Contact{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Contact{}, customErrors.WrapInternal(err, "GetContact")
	}
	return c, nil
}

func (p *ContactRepo) ListContacts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Contact, error) {
	var out []model.Contact
	res := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_name, first_name").
		Limit(limit).Offset(offset).
		Find(&out)
	if err := res.Error; err != nil {
		return nil, customErrors.WrapInternal(err, "ListContacts")
	}
	return out, nil
}

func (p *ContactRepo) SearchContacts(ctx context.Context, userID uuid.UUID, f repo.Filter) ([]model.Contact, error) {
	q := p.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.FirstName != "" {
		q = q.Where("first_name = ?", f.FirstName)
	}
	if f.LastName != "" {
		q = q.Where("last_name = ?", f.LastName)
	}
	if f.Email != "" {
		q = q.Where("email = ?", f.Email)
	}

	var out []model.Contact
	res := q.Order("last_name, first_name").Limit(f.Limit).Offset(f.Offset).Find(&out)
	if err := res.Error; err != nil {
		return nil, customErrors.WrapInternal(err, "SearchContacts")
	}
	return out, nil
}

func (p *ContactRepo) UpdateContact(ctx context.Context, c model.Contact) (model.Contact, error) {
	res := p.db.WithContext(ctx).Model(&model.Contact{}).
		Where("id = ? AND user_id = ?", c.ID, c.UserID).
		Updates(map[string]interface{}{
			"first_name":    c.FirstName,
			"last_name":     c.LastName,
			"email":         c.Email,
			"phone":         c.Phone,
			"date_of_birth": c.DateOfBirth,
		})
	if err := res.Error; err != nil {
		if isUniqueViolation(err) {
			return model.Contact{}, customErrors.ErrAlreadyExists
		}
		return model.Contact{}, customErrors.WrapInternal(err, "UpdateContact")
	}
	if res.RowsAffected == 0 {
		return model.Contact{}, customErrors.ErrNotFound
	}
	return p.GetContact(ctx, c.UserID, c.ID)
}

func (p *ContactRepo) DeleteContact(ctx context.Context, userID, id uuid.UUID) error {
	res := p.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Contact{}, id)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeleteContact")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

// UpcomingBirthdays compares month-day strings so the year of birth is
// irrelevant; a window that crosses December 31 splits into two ranges.
func (p *ContactRepo) UpcomingBirthdays(ctx context.Context, userID uuid.UUID, days int) ([]model.Contact, error) {
	today := time.Now()
	until := today.AddDate(0, 0, days)

	from := today.Format("01-02")
	to := until.Format("01-02")

	q := p.db.WithContext(ctx).Where("user_id = ?", userID)
	if from <= to {
		q = q.Where("to_char(date_of_birth, 'MM-DD') BETWEEN ? AND ?", from, to)
	} else {
		q = q.Where("to_char(date_of_birth, 'MM-DD') >= ? OR to_char(date_of_birth, 'MM-DD') <= ?", from, to)
	}

	var out []model.Contact
	if err := q.Order("date_of_birth").Find(&out).Error; err != nil {
		return nil, customErrors.WrapInternal(err, "UpcomingBirthdays")
	}
	return out, nil
}
