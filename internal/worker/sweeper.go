package worker

import (
	"context"
	"sync"
	"time"

	"github.com/subbuk987/Fundoo/internal/logger"
	"github.com/subbuk987/Fundoo/internal/mail"
	"github.com/subbuk987/Fundoo/internal/store"
)

// ExpirySweeper periodically scans for notes expiring within the notify
// window and submits one reminder-mail job per note. The sweep is idle
// until Start is called.
type ExpirySweeper struct {
	notes    store.NoteRepository
	sender   mail.Sender
	queue    *Queue
	interval time.Duration
	window   time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewExpirySweeper constructs an [ExpirySweeper] scanning every interval
// for notes expiring within window.
func NewExpirySweeper(notes store.NoteRepository, sender mail.Sender, queue *Queue, interval, window time.Duration, log *logger.Logger) *ExpirySweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	if window <= 0 {
		window = 24 * time.Hour
	}

	log.Debug().Dur("interval", interval).Dur("window", window).Msg("creating expiry sweeper")
	return &ExpirySweeper{
		notes:    notes,
		sender:   sender,
		queue:    queue,
		interval: interval,
		window:   window,
		logger:   log,
	}
}

// Start stops any previously running sweep, then launches a background
// goroutine that sweeps every interval. The goroutine exits when ctx is
// cancelled or Stop is called.
func (s *ExpirySweeper) Start(ctx context.Context) {
	s.Stop()

	s.mu.Lock()
	sweepCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		t := time.NewTicker(s.interval)
		defer t.Stop()

		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-t.C:
				s.sweep(sweepCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until it has
// fully exited. Safe to call when the sweep is not running.
func (s *ExpirySweeper) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

// sweep runs one scan and schedules a reminder job per expiring note.
func (s *ExpirySweeper) sweep(ctx context.Context) {
	deadline := time.Now().Add(s.window)

	expiring, err := s.notes.ListExpiringNotes(ctx, deadline)
	if err != nil {
		s.logger.Err(err).Str("func", "*ExpirySweeper.sweep").Msg("error listing expiring notes")
		return
	}

	for _, note := range expiring {
		note := note
		s.queue.Submit(func(jobCtx context.Context) {
			body := mail.ReminderBody(note.OwnerUsername, note.Title, note.Expiry.Format(time.RFC1123))
			if err := s.sender.Send(jobCtx, note.OwnerEmail, mail.ReminderSubject, body); err != nil {
				s.logger.Err(err).
					Str("note_id", note.NoteID.String()).
					Str("to", note.OwnerEmail).
					Msg("error sending expiry reminder")
			}
		})
	}

	if len(expiring) > 0 {
		s.logger.Info().Int("count", len(expiring)).Msg("scheduled expiry reminders")
	}
}
