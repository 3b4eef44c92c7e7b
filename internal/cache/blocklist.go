package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/subbuk987/Fundoo/internal/logger"
)

// Blocklist is the revocation registry for issued tokens, keyed by jti.
//
// An entry's lifetime is bounded by a fixed TTL that must be at least the
// refresh-token lifetime (validated at config load): once the token itself
// could no longer have been valid, the revocation is implicitly forgotten,
// which bounds storage to actively-blocked ids only.
type Blocklist struct {
	kv     KeyValue
	ttl    time.Duration
	logger *logger.Logger
}

// NewBlocklist constructs a [Blocklist] with the given entry TTL.
func NewBlocklist(kv KeyValue, ttl time.Duration, logger *logger.Logger) *Blocklist {
	logger.Debug().Dur("ttl", ttl).Msg("creating token blocklist")
	return &Blocklist{kv: kv, ttl: ttl, logger: logger}
}

func jtiKey(jti string) string { return fmt.Sprintf("jti:%s", jti) }

// AddJTI marks jti revoked. The entry auto-expires after the configured TTL.
func (b *Blocklist) AddJTI(ctx context.Context, jti string) error {
	if jti == "" {
		return errors.New("empty jti")
	}

	if err := b.kv.Set(ctx, jtiKey(jti), jti, b.ttl); err != nil {
		return fmt.Errorf("error adding jti to blocklist: %w", err)
	}

	return nil
}

// InBlocklist reports whether jti has been revoked. Absence means "not
// known to be revoked", NOT proof of validity: the token may still be
// expired or otherwise invalid.
func (b *Blocklist) InBlocklist(ctx context.Context, jti string) (bool, error) {
	_, err := b.kv.Get(ctx, jtiKey(jti))
	if errors.Is(err, ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking jti in blocklist: %w", err)
	}

	return true, nil
}
