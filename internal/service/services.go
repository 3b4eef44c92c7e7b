package service

import (
	"github.com/subbuk987/Fundoo/internal/cache"
	"github.com/subbuk987/Fundoo/internal/config"
	"github.com/subbuk987/Fundoo/internal/crypto"
	"github.com/subbuk987/Fundoo/internal/logger"
	"github.com/subbuk987/Fundoo/internal/mail"
	"github.com/subbuk987/Fundoo/internal/store"
	"github.com/subbuk987/Fundoo/internal/worker"
)

type Services struct {
	AuthService AuthService
	NoteService NoteService
	UserService UserService
}

func NewServices(storages *store.Storages, views *cache.ViewCache, blocklist *cache.Blocklist, queue *worker.Queue, sender mail.Sender, cfg config.App, logger *logger.Logger) *Services {
	hasher := crypto.NewPasswordHasher()

	return &Services{
		AuthService: NewAuthService(storages, hasher, views, blocklist, queue, sender, cfg, logger),
		NoteService: NewNoteService(storages.NoteRepository, views, logger),
		UserService: NewUserService(storages.UserRepository, hasher, views, logger),
	}
}
