package service

import (
	"context"
	"errors"
	"io"

	customErrors "github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/contacts-service/internal/domain/auth/model"
)

func (a *authService) UpdateAvatar(ctx context.Context, p model.Principal, r io.Reader, size int64, contentType string) (model.User, error) {
	url, err := a.avatars.Upload(ctx, p.Username, r, size, contentType)
	if err != nil {
		if errors.Is(err, customErrors.ErrInvalidArgument) {
			return model.User{}, err
		}
		return model.User{}, customErrors.WrapUnavailable(err, "UploadAvatar")
	}

	user, err := a.userRepo.UpdateAvatar(ctx, p.ID, url)
	if err != nil {
		if errors.Is(err, customErrors.ErrNotFound) {
			return model.User{}, customErrors.ErrUnknownSubject
		}
		return model.User{}, customErrors.WrapInternal(err, "UpdateAvatar")
	}
	return user, nil
}
