package redis

import (
	"context"
	"testing"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
)

func newStore(t *testing.T) (*RevocationStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	return NewRevocationStore(client, time.Second), mr
}

func TestRevocationStore_Blacklist(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	exp := time.Now().Add(time.Minute)

	if err := store.Blacklist(ctx, "jti", exp); err != nil {
		t.Fatalf("blacklist: %v", err)
	}
	ok, err := store.IsBlacklisted(ctx, "jti")
	if err != nil || !ok {
		t.Fatalf("is blacklisted %v %v", ok, err)
	}
	// idempotent
	if err := store.Blacklist(ctx, "jti", exp); err != nil {
		t.Fatalf("re-blacklist: %v", err)
	}
}

func TestRevocationStore_NotBlacklisted(t *testing.T) {
	store, _ := newStore(t)
	ok, err := store.IsBlacklisted(context.Background(), "unknown")
	if err != nil || ok {
		t.Fatalf("want false nil, got %v %v", ok, err)
	}
}

func TestRevocationStore_TTLExpires(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	if err := store.Blacklist(ctx, "jti", time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("blacklist: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	ok, err := store.IsBlacklisted(ctx, "jti")
	if err != nil {
		t.Fatalf("is blacklisted: %v", err)
	}
	if ok {
		t.Fatal("entry should have expired with the token")
	}
}

func TestRevocationStore_ExpiredTokenNoop(t *testing.T) {
	store, mr := newStore(t)
	if err := store.Blacklist(context.Background(), "jti", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("blacklist past expiry: %v", err)
	}
	if mr.Exists("revoked:jti") {
		t.Fatal("no entry expected for an already expired token")
	}
}

func TestRevocationStore_FailsClosed(t *testing.T) {
	store, mr := newStore(t)
	mr.Close()

	_, err := store.IsBlacklisted(context.Background(), "jti")
	if !customErrors.IsServiceUnavailable(err) {
		t.Fatalf("want ServiceUnavailable, got %v", err)
	}
	err = store.Blacklist(context.Background(), "jti", time.Now().Add(time.Minute))
	if !customErrors.IsServiceUnavailable(err) {
		t.Fatalf("want ServiceUnavailable, got %v", err)
	}
}
