package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		AccessTokenDuration  Duration `json:"access_token_duration"`
		RefreshTokenDuration Duration `json:"refresh_token_duration"`
		BlocklistTTL         Duration `json:"blocklist_ttl"`
		EmailTokenSecret     string   `json:"email_token_secret"`
		EmailTokenDuration   Duration `json:"email_token_duration"`
		Domain               string   `json:"domain"`
		Version              string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Addr     string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Mail struct {
		GatewayURL string `json:"gateway_url"`
		APIKey     string `json:"api_key"`
		From       string `json:"from"`
	} `json:"mail,omitempty"`

	Workers struct {
		Count         int      `json:"count"`
		SweepInterval Duration `json:"sweep_interval"`
		NotifyWindow  Duration `json:"notify_window"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			AccessTokenDuration:  time.Duration(jsonCfg.App.AccessTokenDuration),
			RefreshTokenDuration: time.Duration(jsonCfg.App.RefreshTokenDuration),
			BlocklistTTL:         time.Duration(jsonCfg.App.BlocklistTTL),
			EmailTokenSecret:     jsonCfg.App.EmailTokenSecret,
			EmailTokenDuration:   time.Duration(jsonCfg.App.EmailTokenDuration),
			Domain:               jsonCfg.App.Domain,
			Version:              jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				Addr:     jsonCfg.Storage.Redis.Addr,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Mail: Mail{
			GatewayURL: jsonCfg.Mail.GatewayURL,
			APIKey:     jsonCfg.Mail.APIKey,
			From:       jsonCfg.Mail.From,
		},
		Workers: Workers{
			Count:         jsonCfg.Workers.Count,
			SweepInterval: time.Duration(jsonCfg.Workers.SweepInterval),
			NotifyWindow:  time.Duration(jsonCfg.Workers.NotifyWindow),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration value: %v", v)
	}
}
