package postgres

import (
	"context"
	"errors"

	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/model"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (p *UserRepo) CreateUser(ctx context.Context, user model.User) (uuid.UUID, error) {
	res := p.db.WithContext(ctx).Create(&user)
	if err := res.Error; err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, customErrors.ErrAlreadyExists
		}
		return uuid.Nil, customErrors.WrapInternal(err, "CreateUser")
	}
	return user.ID, nil
}

func (p *UserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByEmail")
	}

	return u, nil
}

func (p *UserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByID")
	}

	return u, nil
}

func (p *UserRepo) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	res := p.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("refresh_token", token)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "UpdateRefreshToken")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

// RotateRefreshToken is the single-row compare-and-swap that keeps two
// concurrent refresh attempts from both winning: only the request still
// holding the stored token gets to install the new one.
func (p *UserRepo) RotateRefreshToken(ctx context.Context, id uuid.UUID, old, new string) error {
	res := p.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND refresh_token = ?", id, old).
		Update("refresh_token", new)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "RotateRefreshToken")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrStaleRefreshToken
	}
	return nil
}

func (p *UserRepo) SetConfirmed(ctx context.Context, id uuid.UUID) error {
	res := p.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("confirmed", true)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "SetConfirmed")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (p *UserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	res := p.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("password_hash", hash)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "UpdatePasswordHash")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (p *UserRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, url string) (model.User, error) {
	res := p.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("avatar", url)
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "UpdateAvatar")
	}
	if res.RowsAffected == 0 {
		return model.User{}, customErrors.ErrNotFound
	}
	return p.GetUserByID(ctx, id)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
