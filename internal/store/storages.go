package store

import "github.com/subbuk987/Fundoo/internal/logger"

type Storages struct {
	UserRepository UserRepository
	NoteRepository NoteRepository
}

func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		NoteRepository: NewNoteRepository(db, logger),
	}
}
