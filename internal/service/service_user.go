package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/subbuk987/Fundoo/internal/cache"
	"github.com/subbuk987/Fundoo/internal/crypto"
	"github.com/subbuk987/Fundoo/internal/logger"
	"github.com/subbuk987/Fundoo/internal/store"
	"github.com/subbuk987/Fundoo/models"
)

// userService is the concrete implementation of UserService: profile
// reads through the view cache, profile updates with uniqueness
// re-checks, and account deletion with cache cleanup.
type userService struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
	views          *cache.ViewCache
	logger         *logger.Logger
}

// NewUserService constructs a UserService over the given repository,
// hasher and view cache.
func NewUserService(userRepository store.UserRepository, hasher crypto.PasswordHasher, views *cache.ViewCache, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		hasher:         hasher,
		views:          views,
		logger:         logger,
	}
}

// GetProfile returns the user's profile. A warm cache answers directly; a
// miss falls back to the relational store and repopulates best-effort.
func (u *userService) GetProfile(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	cached, err := u.views.GetUser(ctx, user.Username)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Err(err).Str("username", user.Username).Msg("error reading user cache")
	}

	foundUser, err := u.userRepository.FindUserByID(ctx, user.ID)
	if err != nil {
		log.Err(err).Int64("id", user.ID).Msg("user search by id failed")
		return models.User{}, err
	}

	if err := u.views.CacheUser(ctx, foundUser.Username, foundUser); err != nil {
		log.Err(err).Str("username", foundUser.Username).Msg("error repopulating user cache")
	}

	return foundUser, nil
}

// UpdateProfile rewrites the mutable fields of the account. Empty input
// fields keep their current values; a changed username or email is
// re-checked for uniqueness before the write. A non-empty password is
// re-hashed. The per-user secret key is never touched here, so existing
// sessions survive a profile update.
//
// When the username changes, the partitions cached under the old name are
// purged so they cannot serve another account's views.
func (u *userService) UpdateProfile(ctx context.Context, user models.User, input models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	previousUsername := user.Username

	if input.Username != "" && input.Username != user.Username {
		if _, err := u.userRepository.FindUserByUsername(ctx, input.Username); err == nil {
			return models.User{}, ErrUsernameTaken
		} else if !errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("user search by username failed: %w", err)
		}
		user.Username = input.Username
	}

	if input.Email != "" && input.Email != user.Email {
		if _, err := u.userRepository.FindUserByEmail(ctx, input.Email); err == nil {
			return models.User{}, ErrEmailTaken
		} else if !errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("user search by email failed: %w", err)
		}
		user.Email = input.Email
	}

	if input.Password != "" {
		digest, err := u.hasher.HashPassword(input.Password)
		if err != nil {
			log.Err(err).Str("username", user.Username).Msg("password hashing failed")
			return models.User{}, fmt.Errorf("password hashing failed: %w", err)
		}
		user.PasswordHash = digest
	}

	updated, err := u.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Int64("id", user.ID).Msg("user update ended with error")
		if errors.Is(err, store.ErrUserAlreadyExists) {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, err
	}

	if updated.Username != previousUsername {
		if err := u.views.Purge(ctx, previousUsername); err != nil {
			log.Err(err).Str("username", previousUsername).Msg("error purging stale cache partitions")
		}
	}

	if err := u.views.CacheUser(ctx, updated.Username, updated); err != nil {
		log.Err(err).Str("username", updated.Username).Msg("error refreshing user cache")
	}

	return updated, nil
}

// DeleteAccount removes the account; owned notes cascade away with it.
// The user's cache partitions are purged best-effort.
func (u *userService) DeleteAccount(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	if err := u.userRepository.DeleteUser(ctx, user.ID); err != nil {
		log.Err(err).Int64("id", user.ID).Msg("user deletion ended with error")
		return err
	}

	if err := u.views.Purge(ctx, user.Username); err != nil {
		log.Err(err).Str("username", user.Username).Msg("error purging cache after account deletion")
	}

	return nil
}
