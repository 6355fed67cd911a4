package service

import (
	"context"
	"errors"

	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/app/auth/token"
	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/model"
)

// Resolve turns a bearer access token into the Principal it names.
// Revocation is checked on every call; a store outage fails the request
// rather than letting a possibly revoked token through.
func (a *authService) Resolve(ctx context.Context, rawToken string) (model.Principal, error) {
	claims, err := a.codec.Decode(rawToken, token.PurposeAccess)
	if err != nil {
		return model.Principal{}, err
	}

	revoked, err := a.tokenRepo.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return model.Principal{}, err
	}
	if revoked {
		return model.Principal{}, customErrors.ErrRevoked
	}

	user, err := a.userRepo.GetUserByEmail(ctx, claims.Subject)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.Principal{}, customErrors.ErrUnknownSubject
	case err != nil:
		return model.Principal{}, customErrors.WrapInternal(err, "Resolve")
	}

	return model.Principal{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Avatar:   user.Avatar,
		Roles:    []string{"user"},
	}, nil
}
