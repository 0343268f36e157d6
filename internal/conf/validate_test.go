package conf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validSettings returns a minimal settings struct that passes validation.
func validSettings() *Settings {
	s := &Settings{}
	s.WebServer.Enabled = true
	s.WebServer.Port = "8080"
	s.Output.SQLite.Enabled = true
	s.Output.SQLite.Path = "challenge500.db"
	s.Challenge = ChallengeConfig{
		MaxBytes:       1250,
		MinBytes:       1,
		DailyLimit:     true,
		Timezone:       "Asia/Seoul",
		CandidateCount: 3,
	}
	return s
}

func TestValidateSettingsValid(t *testing.T) {
	assert.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateWebServerPort(t *testing.T) {
	s := validSettings()
	s.WebServer.Port = "not-a-port"
	assert.Error(t, ValidateSettings(s))

	s.WebServer.Port = "70000"
	assert.Error(t, ValidateSettings(s))

	// port is ignored when the web server is disabled
	s.WebServer.Enabled = false
	assert.NoError(t, ValidateSettings(s))
}

func TestValidateOutputSettings(t *testing.T) {
	s := validSettings()
	s.Output.SQLite.Enabled = false
	assert.Error(t, ValidateSettings(s), "no backend enabled")

	s = validSettings()
	s.Output.MySQL.Enabled = true
	assert.Error(t, ValidateSettings(s), "both backends enabled")

	s = validSettings()
	s.Output.SQLite.Path = ""
	assert.Error(t, ValidateSettings(s), "sqlite without path")

	s = validSettings()
	s.Output.SQLite.Enabled = false
	s.Output.MySQL.Enabled = true
	s.Output.MySQL.Database = "challenge500"
	assert.NoError(t, ValidateSettings(s))
}

func TestValidateChallengeSettings(t *testing.T) {
	s := validSettings()
	s.Challenge.MaxBytes = 0
	assert.Error(t, ValidateSettings(s))

	s = validSettings()
	s.Challenge.MinBytes = 2000
	assert.Error(t, ValidateSettings(s))

	s = validSettings()
	s.Challenge.CandidateCount = 0
	assert.Error(t, ValidateSettings(s))

	s = validSettings()
	s.Challenge.Timezone = "Nowhere/Nothing"
	assert.Error(t, ValidateSettings(s))
}

func TestValidateOracleSettings(t *testing.T) {
	s := validSettings()
	s.Oracle.Enabled = true
	assert.Error(t, ValidateSettings(s), "oracle without api key")

	s.Oracle.APIKey = "key"
	s.Oracle.Timeout = 0
	assert.Error(t, ValidateSettings(s), "oracle without timeout")

	s.Oracle.Timeout = 20 * time.Second
	assert.NoError(t, ValidateSettings(s))

	// disabled oracle skips validation entirely
	s = validSettings()
	s.Oracle.Enabled = false
	assert.NoError(t, ValidateSettings(s))
}

func TestValidationErrorCollectsAll(t *testing.T) {
	s := validSettings()
	s.WebServer.Port = "bad"
	s.Challenge.MaxBytes = -1
	s.Output.SQLite.Enabled = false

	err := ValidateSettings(s)
	require.Error(t, err)

	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 3)
}

func TestSetTestSettings(t *testing.T) {
	original := GetSettings()
	t.Cleanup(func() { SetTestSettings(original) })

	s := validSettings()
	SetTestSettings(s)
	assert.Same(t, s, GetSettings())
}
