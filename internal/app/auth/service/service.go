package service

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/app/auth/hash"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/app/auth/token"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/dto"
	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/model"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/repo"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/notify"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/storage"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// mailTimeout bounds a background delivery attempt; the triggering request
// has already returned by then.
const mailTimeout = 15 * time.Second

type Service interface {
	Signup(ctx context.Context, in dto.SignupDTO, host string) (model.User, error)

	// ConfirmEmail returns already=true when the address was confirmed before.
	ConfirmEmail(ctx context.Context, rawToken string) (already bool, err error)

	ResendVerification(ctx context.Context, email, host string) (already bool, err error)

	Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, error)

	Refresh(ctx context.Context, rawToken string) (model.TokenPair, error)

	Logout(ctx context.Context, in dto.LogoutDTO) error

	RequestPasswordReset(ctx context.Context, email, host string) error

	ResetPassword(ctx context.Context, rawToken, newPassword string) error

	// Resolve authenticates a bearer access token into a Principal.
	Resolve(ctx context.Context, rawToken string) (model.Principal, error)

	UpdateAvatar(ctx context.Context, p model.Principal, r io.Reader, size int64, contentType string) (model.User, error)
}

type authService struct {
	userRepo  repo.UserRepo
	tokenRepo repo.TokenRepo
	codec     *token.Codec
	hasher    *hash.Hasher
	mailer    notify.Mailer
	avatars   storage.AvatarStorage
	v         *validator.Validate
	log       *zap.Logger
}

func New(
	ur repo.UserRepo,
	tr repo.TokenRepo,
	codec *token.Codec,
	hasher *hash.Hasher,
	mailer notify.Mailer,
	avatars storage.AvatarStorage,
	v *validator.Validate,
	log *zap.Logger,
) Service {
	return &authService{
		userRepo: ur, tokenRepo: tr, codec: codec, hasher: hasher,
		mailer: mailer, avatars: avatars, v: v, log: log,
	}
}

func (a *authService) Signup(ctx context.Context, in dto.SignupDTO, host string) (model.User, error) {
	if err := a.v.Struct(in); err != nil {
		return model.User{}, customErrors.NewInvalidArgument(err.Error())
	}

	passwordHash, err := a.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "Signup")
	}

	user := model.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        strings.ToLower(in.Email),
		PasswordHash: passwordHash,
		Avatar:       gravatarURL(in.Email),
	}
	if _, err = a.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.User{}, customErrors.ErrAlreadyExists
		}
		return model.User{}, customErrors.WrapInternal(err, "Signup")
	}

	verify, _, _, err := a.codec.Issue(user.Email, token.PurposeEmailVerify)
	if err != nil {
		return model.User{}, customErrors.WrapInternal(err, "IssueEmailToken")
	}
	a.dispatchMail("verification", func(ctx context.Context) error {
		return a.mailer.SendVerification(ctx, user.Email, user.Username, host, verify)
	})

	return user, nil
}

func (a *authService) ConfirmEmail(ctx context.Context, rawToken string) (bool, error) {
	claims, err := a.codec.Decode(rawToken, token.PurposeEmailVerify)
	if err != nil {
		return false, err
	}

	user, err := a.userRepo.GetUserByEmail(ctx, claims.Subject)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return false, customErrors.ErrUnknownSubject
	case err != nil:
		return false, customErrors.WrapInternal(err, "ConfirmEmail")
	}

	if user.Confirmed {
		return true, nil
	}
	if err := a.userRepo.SetConfirmed(ctx, user.ID); err != nil {
		return false, customErrors.WrapInternal(err, "ConfirmEmail")
	}
	return false, nil
}

func (a *authService) ResendVerification(ctx context.Context, email, host string) (bool, error) {
	user, err := a.userRepo.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return false, customErrors.ErrNotFound
	case err != nil:
		return false, customErrors.WrapInternal(err, "ResendVerification")
	}

	if user.Confirmed {
		return true, nil
	}

	verify, _, _, err := a.codec.Issue(user.Email, token.PurposeEmailVerify)
	if err != nil {
		return false, customErrors.WrapInternal(err, "IssueEmailToken")
	}
	a.dispatchMail("verification", func(ctx context.Context) error {
		return a.mailer.SendVerification(ctx, user.Email, user.Username, host, verify)
	})
	return false, nil
}

func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.TokenPair, error) {
	if err := a.v.Struct(in); err != nil {
		return model.TokenPair{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.userRepo.GetUserByEmail(ctx, in.Username)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		// burn a comparison so unknown accounts cost the same as bad passwords
		a.hasher.DummyVerify(in.Password)
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Login")
	}

	if !a.hasher.Verify(in.Password, user.PasswordHash) {
		return model.TokenPair{}, customErrors.ErrInvalidCredentials
	}
	if !user.Confirmed {
		return model.TokenPair{}, customErrors.ErrNotConfirmed
	}

	pair, refresh, err := a.issuePair(user)
	if err != nil {
		return model.TokenPair{}, err
	}
	if err := a.userRepo.UpdateRefreshToken(ctx, user.ID, &refresh); err != nil {
		return model.TokenPair{}, customErrors.WrapInternal(err, "StoreRefresh")
	}
	return pair, nil
}

func (a *authService) Refresh(ctx context.Context, rawToken string) (model.TokenPair, error) {
	claims, err := a.codec.Decode(rawToken, token.PurposeRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}

	revoked, err := a.tokenRepo.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return model.TokenPair{}, err
	}
	if revoked {
		// a blacklisted jti on this path means the token was already
		// consumed; the client has to log in again
		return model.TokenPair{}, customErrors.ErrStaleRefreshToken
	}

	user, err := a.userRepo.GetUserByEmail(ctx, claims.Subject)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.TokenPair{}, customErrors.ErrUnknownSubject
	case err != nil:
		return model.TokenPair{}, customErrors.WrapInternal(err, "Refresh")
	}

	if user.RefreshToken == nil || *user.RefreshToken != rawToken {
		// a token we did not store wins nothing; force re-login
		_ = a.userRepo.UpdateRefreshToken(ctx, user.ID, nil)
		return model.TokenPair{}, customErrors.ErrStaleRefreshToken
	}

	pair, refresh, err := a.issuePair(user)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := a.userRepo.RotateRefreshToken(ctx, user.ID, rawToken, refresh); err != nil {
		if errors.Is(err, customErrors.ErrStaleRefreshToken) {
			return model.TokenPair{}, customErrors.ErrStaleRefreshToken
		}
		return model.TokenPair{}, customErrors.WrapInternal(err, "RotateRefresh")
	}

	if err := a.tokenRepo.Blacklist(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return model.TokenPair{}, err
	}

	return pair, nil
}

func (a *authService) Logout(ctx context.Context, in dto.LogoutDTO) error {
	if err := a.v.Struct(in); err != nil {
		return customErrors.NewInvalidArgument(err.Error())
	}

	claims, err := a.codec.Decode(in.AccessToken, token.PurposeAccess)
	if err != nil {
		return err
	}

	if err := a.tokenRepo.Blacklist(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}

	// the refresh token goes too: safer default than access-only revocation
	if in.RefreshToken != "" {
		if rc, errRt := a.codec.Decode(in.RefreshToken, token.PurposeRefresh); errRt == nil {
			if err := a.tokenRepo.Blacklist(ctx, rc.ID, rc.ExpiresAt.Time); err != nil {
				return err
			}
		}
	}

	user, err := a.userRepo.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, customErrors.ErrNotFound) {
			return customErrors.ErrUnknownSubject
		}
		return customErrors.WrapInternal(err, "Logout")
	}
	if user.RefreshToken != nil {
		if err := a.userRepo.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
			return customErrors.WrapInternal(err, "Logout")
		}
	}
	return nil
}

func (a *authService) RequestPasswordReset(ctx context.Context, email, host string) error {
	user, err := a.userRepo.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return customErrors.ErrNotFound
	case err != nil:
		return customErrors.WrapInternal(err, "RequestPasswordReset")
	}

	reset, _, _, err := a.codec.Issue(user.Email, token.PurposeResetPassword)
	if err != nil {
		return customErrors.WrapInternal(err, "IssueResetToken")
	}
	a.dispatchMail("password reset", func(ctx context.Context) error {
		return a.mailer.SendPasswordReset(ctx, user.Email, user.Username, host, reset)
	})
	return nil
}

func (a *authService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	claims, err := a.codec.Decode(rawToken, token.PurposeResetPassword)
	if err != nil {
		return err
	}

	user, err := a.userRepo.GetUserByEmail(ctx, claims.Subject)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return customErrors.ErrUnknownSubject
	case err != nil:
		return customErrors.WrapInternal(err, "ResetPassword")
	}

	passwordHash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return customErrors.WrapInternal(err, "ResetPassword")
	}
	if err := a.userRepo.UpdatePasswordHash(ctx, user.ID, passwordHash); err != nil {
		return customErrors.WrapInternal(err, "ResetPassword")
	}

	// every session minted under the old password dies with it
	if user.RefreshToken != nil {
		if err := a.userRepo.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
			return customErrors.WrapInternal(err, "ResetPassword")
		}
	}
	return nil
}

func (a *authService) issuePair(user model.User) (model.TokenPair, string, error) {
	at, atExp, _, err := a.codec.Issue(user.Email, token.PurposeAccess)
	if err != nil {
		return model.TokenPair{}, "", customErrors.WrapInternal(err, "IssueAccess")
	}
	rt, rtExp, _, err := a.codec.Issue(user.Email, token.PurposeRefresh)
	if err != nil {
		return model.TokenPair{}, "", customErrors.WrapInternal(err, "IssueRefresh")
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:  at,
		RefreshToken: rt,
		AccessTTL:    atExp.Sub(now),
		RefreshTTL:   rtExp.Sub(now),
		UserID:       user.ID,
	}, rt, nil
}

func (a *authService) dispatchMail(kind string, send func(context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()
		if err := send(ctx); err != nil {
			a.log.Warn("mail delivery failed", zap.String("kind", kind), zap.Error(err))
		}
	}()
}

func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon", sum)
}
