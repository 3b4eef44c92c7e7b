package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup, applying defaults to
// optional fields left unset by every source.
//
// Invariants:
//   - the database DSN must be present;
//   - the email token secret must be present (verification links are
//     unforgeable only as long as this secret is);
//   - the blocklist TTL must be at least the refresh-token lifetime, so a
//     revoked token id can never outlive its blocklist entry.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.AccessTokenDuration == 0 {
		cfg.App.AccessTokenDuration = DefaultAccessTokenDuration
	}
	if cfg.App.RefreshTokenDuration == 0 {
		cfg.App.RefreshTokenDuration = DefaultRefreshTokenDuration
	}
	if cfg.App.BlocklistTTL == 0 {
		cfg.App.BlocklistTTL = cfg.App.RefreshTokenDuration
	}
	if cfg.App.EmailTokenDuration == 0 {
		cfg.App.EmailTokenDuration = DefaultEmailTokenDuration
	}
	if cfg.Workers.Count == 0 {
		cfg.Workers.Count = DefaultWorkersCount
	}
	if cfg.Workers.SweepInterval == 0 {
		cfg.Workers.SweepInterval = DefaultSweepInterval
	}
	if cfg.Workers.NotifyWindow == 0 {
		cfg.Workers.NotifyWindow = DefaultNotifyWindow
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.EmailTokenSecret == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.BlocklistTTL < cfg.App.RefreshTokenDuration {
		return ErrBlocklistTTLTooShort
	}

	return nil
}
