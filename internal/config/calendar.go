package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
)

type CalendarConfig struct {
	Enabled         bool   `env:"GOOGLE_CALENDAR_ENABLED" envDefault:"true"`
	CredentialsFile string `env:"GOOGLE_CALENDAR_CREDENTIALS_FILE"`
	TokenFile       string `env:"GOOGLE_CALENDAR_TOKEN_FILE"`
	CalendarID      string `env:"GOOGLE_CALENDAR_CALENDAR_ID" envDefault:"primary"`
}

// NewCalendarConfig parses the calendar settings. Credential and token files
// default to the credentials directory under runtimePath.
func NewCalendarConfig(ctx context.Context, runtimePath string) *CalendarConfig {
	c := &CalendarConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Calendar config")
	}

	if c.CredentialsFile == "" {
		c.CredentialsFile = filepath.Join(runtimePath, "credentials", "google_credentials.json")
	}
	if c.TokenFile == "" {
		c.TokenFile = filepath.Join(runtimePath, "credentials", "google_token.json")
	}
	return c
}
