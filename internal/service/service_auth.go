package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/subbuk987/Fundoo/internal/cache"
	"github.com/subbuk987/Fundoo/internal/config"
	"github.com/subbuk987/Fundoo/internal/crypto"
	"github.com/subbuk987/Fundoo/internal/logger"
	"github.com/subbuk987/Fundoo/internal/mail"
	"github.com/subbuk987/Fundoo/internal/store"
	"github.com/subbuk987/Fundoo/internal/utils"
	"github.com/subbuk987/Fundoo/internal/worker"
	"github.com/subbuk987/Fundoo/models"
)

// authService is the concrete implementation of AuthService.
// It owns the whole session lifecycle: registration, credential
// verification, token issue and validation, revocation, and email
// verification.
//
// Every session token is signed with the owning user's personal secret
// key, so validation is a two-phase decode: peek at the unverified
// principal id, load that user, then verify against their secret.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// noteRepository is used to prime the notes/labels cache partitions
	// at login.
	noteRepository store.NoteRepository

	// hasher produces and verifies bcrypt password digests.
	hasher crypto.PasswordHasher

	// views is the read-through cache primed at login and purged at logout.
	views *cache.ViewCache

	// blocklist is the jti revocation registry consulted on every decode.
	blocklist *cache.Blocklist

	// queue executes fire-and-forget jobs such as sending mail.
	queue *worker.Queue

	// sender delivers verification mail through the gateway.
	sender mail.Sender

	// accessDuration and refreshDuration control the lifetimes of the two
	// token variants.
	accessDuration  time.Duration
	refreshDuration time.Duration

	// emailSecret signs email verification tokens; unlike session secrets
	// it is server-wide.
	emailSecret   string
	emailDuration time.Duration

	// domain is the public host used when composing verification links.
	domain string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given storage,
// cache and mail collaborators, with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(storages *store.Storages, hasher crypto.PasswordHasher, views *cache.ViewCache, blocklist *cache.Blocklist, queue *worker.Queue, sender mail.Sender, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  storages.UserRepository,
		noteRepository:  storages.NoteRepository,
		hasher:          hasher,
		views:           views,
		blocklist:       blocklist,
		queue:           queue,
		sender:          sender,
		accessDuration:  cfg.AccessTokenDuration,
		refreshDuration: cfg.RefreshTokenDuration,
		emailSecret:     cfg.EmailTokenSecret,
		emailDuration:   cfg.EmailTokenDuration,
		domain:          cfg.Domain,
		logger:          logger,
	}
}

// Signup creates a new user account.
//
// Username and email are pre-checked for uniqueness so the caller gets a
// field-specific error; the database constraints remain the authority for
// races, surfacing as [ErrUsernameTaken]. The password is bcrypt-hashed
// and a fresh per-user secret key is generated before persistence.
// A verification mail job is submitted fire-and-forget: its failure never
// fails the signup.
//
// Returns the persisted user (with a server-assigned ID) or:
//   - ErrInvalidDataProvided if username, email or password is empty.
//   - ErrUsernameTaken / ErrEmailTaken when the account already exists.
func (a *authService) Signup(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Username == "" || user.Email == "" || user.Password == "" {
		log.Error().Str("username", user.Username).Msg("invalid signup data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	if _, err := a.userRepository.FindUserByUsername(ctx, user.Username); err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if _, err := a.userRepository.FindUserByEmail(ctx, user.Email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	digest, err := a.hasher.HashPassword(user.Password)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.PasswordHash = digest
	user.Password = ""
	user.SecretKey = uuid.NewString()

	created, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		if errors.Is(err, store.ErrUserAlreadyExists) {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	a.dispatchVerificationMail(created)

	if err := a.views.CacheUser(ctx, created.Username, created); err != nil {
		log.Err(err).Str("username", created.Username).Msg("error caching user profile after signup")
	}

	return created, nil
}

// Login authenticates an existing user and opens a session.
//
// On success it issues a fresh access/refresh token pair, each carrying
// its own jti and signed with the user's personal secret, and primes the
// cache with the profile, notes and labels views (best-effort: priming
// failures are logged, never returned).
//
// Returns the authenticated user and token pair, or:
//   - ErrInvalidUsername when the account does not exist.
//   - ErrInvalidPassword when the password does not match.
//   - ErrUserNotVerified when the email address is not confirmed yet.
func (a *authService) Login(ctx context.Context, username, password string) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, models.TokenPair{}, ErrInvalidUsername
		}

		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !a.hasher.CheckPassword(password, foundUser.PasswordHash) {
		log.Error().
			Int64("id", foundUser.ID).
			Str("username", foundUser.Username).
			Msg("wrong password")
		return models.User{}, models.TokenPair{}, ErrInvalidPassword
	}

	if !foundUser.IsVerified {
		return models.User{}, models.TokenPair{}, ErrUserNotVerified
	}

	pair, err := a.issueTokenPair(foundUser)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	a.primeCache(ctx, foundUser)

	return foundUser, pair, nil
}

// Authenticate validates a raw token string via the two-phase decode.
//
// Phase one extracts the unverified principal id; phase two loads that
// user and verifies the token against their personal secret. The jti is
// then checked against the blocklist, and the refresh flag against the
// wanted variant.
//
// Every decode failure (malformed, expired, tampered, unknown principal,
// revoked) is normalised to [ErrTokenIsInvalid] so that callers cannot
// distinguish them. Only a variant mismatch gets its own error:
// [ErrAccessTokenRequired] or [ErrRefreshTokenRequired].
func (a *authService) Authenticate(ctx context.Context, tokenString string, wantRefresh bool) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	userID, err := utils.ParseUnverifiedUserID(tokenString)
	if err != nil {
		return models.User{}, models.Token{}, ErrTokenIsInvalid
	}

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, models.Token{}, ErrTokenIsInvalid
		}

		log.Err(err).Int64("id", userID).Msg("user search by id failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by id failed: %w", err)
	}

	token, err := utils.ParseSessionToken(tokenString, foundUser.SecretKey)
	if err != nil {
		return models.User{}, models.Token{}, ErrTokenIsInvalid
	}

	blocked, err := a.blocklist.InBlocklist(ctx, token.JTI())
	if err != nil {
		log.Err(err).Str("jti", token.JTI()).Msg("blocklist check failed")
		return models.User{}, models.Token{}, fmt.Errorf("blocklist check failed: %w", err)
	}
	if blocked {
		return models.User{}, models.Token{}, ErrTokenIsInvalid
	}

	if token.Refresh != wantRefresh {
		if wantRefresh {
			return models.User{}, models.Token{}, ErrRefreshTokenRequired
		}
		return models.User{}, models.Token{}, ErrAccessTokenRequired
	}

	return foundUser, token, nil
}

// Refresh exchanges a valid refresh token for a fresh access token. The
// presented refresh token stays valid and is echoed back in the pair.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	foundUser, token, err := a.Authenticate(ctx, refreshToken, true)
	if err != nil {
		return models.TokenPair{}, err
	}

	// exp must be present and in the future even if decode let it through
	if token.ExpiresAt == nil || token.ExpiresAt.Before(time.Now()) {
		return models.TokenPair{}, ErrTokenIsInvalid
	}

	access, err := utils.GenerateSessionToken(foundUser.ID, foundUser.Username, foundUser.SecretKey, a.accessDuration, false)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error issuing access token: %w", err)
	}

	return models.TokenPair{
		AccessToken:  access.SignedString,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// Logout revokes the presented access token and drops the user's cache
// partitions. Only the access jti is blocklisted: the refresh token
// remains usable until it expires. A cache purge failure is logged, never
// returned.
func (a *authService) Logout(ctx context.Context, user models.User, token models.Token) error {
	log := logger.FromContext(ctx)

	if err := a.blocklist.AddJTI(ctx, token.JTI()); err != nil {
		log.Err(err).Str("jti", token.JTI()).Msg("error blocklisting token")
		return fmt.Errorf("error blocklisting token: %w", err)
	}

	if err := a.views.Purge(ctx, user.Username); err != nil {
		log.Err(err).Str("username", user.Username).Msg("error purging cache at logout")
	}

	return nil
}

// VerifyEmail consumes a verification link token and flips the account's
// verified flag. The operation is idempotent: replaying a still-valid link
// changes nothing.
//
// Returns [ErrTokenIsInvalid] for any decode failure and
// [store.ErrUserNotFound] when the embedded address matches no account.
func (a *authService) VerifyEmail(ctx context.Context, tokenString string) error {
	log := logger.FromContext(ctx)

	email, err := utils.ParseEmailToken(tokenString, a.emailSecret)
	if err != nil {
		return ErrTokenIsInvalid
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return err
	}

	if err := a.userRepository.MarkUserVerified(ctx, foundUser.ID); err != nil {
		log.Err(err).Int64("id", foundUser.ID).Msg("error marking user verified")
		return err
	}

	foundUser.IsVerified = true
	if err := a.views.CacheUser(ctx, foundUser.Username, foundUser); err != nil {
		log.Err(err).Str("username", foundUser.Username).Msg("error refreshing user cache after verification")
	}

	return nil
}

// issueTokenPair creates the access and refresh tokens of a new session.
func (a *authService) issueTokenPair(user models.User) (models.TokenPair, error) {
	access, err := utils.GenerateSessionToken(user.ID, user.Username, user.SecretKey, a.accessDuration, false)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error issuing access token: %w", err)
	}

	refresh, err := utils.GenerateSessionToken(user.ID, user.Username, user.SecretKey, a.refreshDuration, true)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error issuing refresh token: %w", err)
	}

	return models.TokenPair{
		AccessToken:  access.SignedString,
		RefreshToken: refresh.SignedString,
		TokenType:    "bearer",
	}, nil
}

// primeCache loads the user's views from the relational store into the
// cache. Best-effort: failures are logged only.
func (a *authService) primeCache(ctx context.Context, user models.User) {
	log := logger.FromContext(ctx)

	if err := a.views.CacheUser(ctx, user.Username, user); err != nil {
		log.Err(err).Str("username", user.Username).Msg("error priming user cache")
	}

	notes, err := a.noteRepository.ListUserNotes(ctx, user.ID)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("error loading notes for cache priming")
	} else if err := a.views.CacheNotes(ctx, user.Username, notes); err != nil {
		log.Err(err).Str("username", user.Username).Msg("error priming notes cache")
	}

	labels, err := a.noteRepository.ListAllLabels(ctx)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("error loading labels for cache priming")
	} else if err := a.views.CacheLabels(ctx, user.Username, labels); err != nil {
		log.Err(err).Str("username", user.Username).Msg("error priming labels cache")
	}
}

// dispatchVerificationMail submits the verification mail job. Token
// generation failure or delivery failure is logged, never surfaced.
func (a *authService) dispatchVerificationMail(user models.User) {
	tokenString, err := utils.GenerateEmailToken(user.Username, user.Email, a.emailSecret, a.emailDuration)
	if err != nil {
		a.logger.Err(err).Str("username", user.Username).Msg("error generating email verification token")
		return
	}

	body := mail.VerificationBody(user.Username, a.domain, tokenString)
	a.queue.Submit(func(ctx context.Context) {
		if err := a.sender.Send(ctx, user.Email, mail.VerificationSubject, body); err != nil {
			a.logger.Err(err).Str("to", user.Email).Msg("error sending verification mail")
		}
	})
}
