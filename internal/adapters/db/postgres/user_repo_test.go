package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/model"
	contactmodel "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/contacts/model"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &contactmodel.Contact{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newUser(email string) model.User {
	return model.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     "user",
		PasswordHash: "h",
		CreatedAt:    time.Now(),
	}
}

func TestUserRepo_CreateGet(t *testing.T) {
	repo := NewUserRepo(setupDB(t))
	ctx := context.Background()

	user := newUser("a@x.com")
	id, err := repo.CreateUser(ctx, user)
	if err != nil || id != user.ID {
		t.Fatalf("create %v", err)
	}

	got, err := repo.GetUserByEmail(ctx, "A@X.COM")
	if err != nil || got.ID != user.ID {
		t.Fatalf("lookup must be case-insensitive: %v", err)
	}
	if got.Confirmed {
		t.Fatal("new user must start unconfirmed")
	}

	got2, err := repo.GetUserByID(ctx, user.ID)
	if err != nil || got2.Email != user.Email {
		t.Fatalf("get by id %v", err)
	}
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	repo := NewUserRepo(setupDB(t))
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, newUser("a@x.com")); err != nil {
		t.Fatalf("create %v", err)
	}
	if _, err := repo.CreateUser(ctx, newUser("a@x.com")); !errors.IsAlreadyExists(err) {
		t.Fatalf("want AlreadyExists, got %v", err)
	}
}

func TestUserRepo_RefreshTokenLifecycle(t *testing.T) {
	repo := NewUserRepo(setupDB(t))
	ctx := context.Background()

	user := newUser("a@x.com")
	if _, err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create %v", err)
	}

	r1 := "refresh-1"
	if err := repo.UpdateRefreshToken(ctx, user.ID, &r1); err != nil {
		t.Fatalf("set token %v", err)
	}

	if err := repo.RotateRefreshToken(ctx, user.ID, r1, "refresh-2"); err != nil {
		t.Fatalf("rotate %v", err)
	}
	got, _ := repo.GetUserByID(ctx, user.ID)
	if got.RefreshToken == nil || *got.RefreshToken != "refresh-2" {
		t.Fatal("rotation must install the new token")
	}

	// the old token lost the race and must not rotate again
	if err := repo.RotateRefreshToken(ctx, user.ID, r1, "refresh-3"); !errors.IsStaleRefreshToken(err) {
		t.Fatalf("want StaleRefreshToken, got %v", err)
	}

	if err := repo.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
		t.Fatalf("clear token %v", err)
	}
	got, _ = repo.GetUserByID(ctx, user.ID)
	if got.RefreshToken != nil {
		t.Fatal("token must be nil after logout")
	}
}

func TestUserRepo_ConfirmAndPassword(t *testing.T) {
	repo := NewUserRepo(setupDB(t))
	ctx := context.Background()

	user := newUser("a@x.com")
	if _, err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("create %v", err)
	}

	if err := repo.SetConfirmed(ctx, user.ID); err != nil {
		t.Fatalf("confirm %v", err)
	}
	got, _ := repo.GetUserByID(ctx, user.ID)
	if !got.Confirmed {
		t.Fatal("confirmed flag not set")
	}

	if err := repo.UpdatePasswordHash(ctx, user.ID, "h2"); err != nil {
		t.Fatalf("update hash %v", err)
	}
	got, _ = repo.GetUserByID(ctx, user.ID)
	if got.PasswordHash != "h2" {
		t.Fatal("hash not updated")
	}

	updated, err := repo.UpdateAvatar(ctx, user.ID, "https://cdn/x.png")
	if err != nil || updated.Avatar != "https://cdn/x.png" {
		t.Fatalf("avatar %v", err)
	}
}

func TestUserRepo_NotFound(t *testing.T) {
	repo := NewUserRepo(setupDB(t))
	ctx := context.Background()

	if _, err := repo.GetUserByEmail(ctx, "none@x.com"); !errors.IsNotFound(err) {
		t.Fatalf("want NotFound, got %v", err)
	}
	if err := repo.SetConfirmed(ctx, uuid.New()); !errors.IsNotFound(err) {
		t.Fatalf("want NotFound, got %v", err)
	}
	if err := repo.UpdateRefreshToken(ctx, uuid.New(), nil); !errors.IsNotFound(err) {
		t.Fatalf("want NotFound, got %v", err)
	}
}
