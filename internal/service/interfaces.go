package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/subbuk987/Fundoo/models"
)

type AuthService interface {
	Signup(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, username, password string) (models.User, models.TokenPair, error)
	Authenticate(ctx context.Context, tokenString string, wantRefresh bool) (models.User, models.Token, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	Logout(ctx context.Context, user models.User, token models.Token) error
	VerifyEmail(ctx context.Context, tokenString string) error
}

type NoteService interface {
	CreateNote(ctx context.Context, user models.User, input models.NoteInput) (models.Note, error)
	GetNotes(ctx context.Context, user models.User) ([]models.Note, error)
	UpdateNote(ctx context.Context, user models.User, id uuid.UUID, input models.NoteInput) (models.Note, error)
	DeleteNote(ctx context.Context, user models.User, id uuid.UUID) error
	GetLabels(ctx context.Context, user models.User) ([]models.Label, error)
}

type UserService interface {
	GetProfile(ctx context.Context, user models.User) (models.User, error)
	UpdateProfile(ctx context.Context, user models.User, input models.User) (models.User, error)
	DeleteAccount(ctx context.Context, user models.User) error
}
