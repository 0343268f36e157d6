// conf/validate.go

package conf

import (
	"fmt"
	"strconv"
	"time"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if err := validateWebServerSettings(settings); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateOutputSettings(settings); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateChallengeSettings(&settings.Challenge); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateOracleSettings(&settings.Oracle); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateWebServerSettings(settings *Settings) error {
	if !settings.WebServer.Enabled {
		return nil
	}
	port, err := strconv.Atoi(settings.WebServer.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid web server port: %s", settings.WebServer.Port)
	}
	return nil
}

func validateOutputSettings(settings *Settings) error {
	sqlite := settings.Output.SQLite.Enabled
	mysql := settings.Output.MySQL.Enabled
	switch {
	case sqlite && mysql:
		return fmt.Errorf("only one database output may be enabled at a time")
	case !sqlite && !mysql:
		return fmt.Errorf("no database output enabled")
	case sqlite && settings.Output.SQLite.Path == "":
		return fmt.Errorf("sqlite output enabled but path is empty")
	case mysql && settings.Output.MySQL.Database == "":
		return fmt.Errorf("mysql output enabled but database name is empty")
	}
	return nil
}

func validateChallengeSettings(challenge *ChallengeConfig) error {
	if challenge.MaxBytes <= 0 {
		return fmt.Errorf("challenge maxbytes must be positive, got %d", challenge.MaxBytes)
	}
	if challenge.MinBytes < 0 || challenge.MinBytes > challenge.MaxBytes {
		return fmt.Errorf("challenge minbytes %d out of range [0, %d]", challenge.MinBytes, challenge.MaxBytes)
	}
	if challenge.CandidateCount < 1 {
		return fmt.Errorf("challenge candidatecount must be at least 1, got %d", challenge.CandidateCount)
	}
	if _, err := time.LoadLocation(challenge.Timezone); err != nil {
		return fmt.Errorf("invalid challenge timezone %q: %w", challenge.Timezone, err)
	}
	return nil
}

func validateOracleSettings(oracle *OracleConfig) error {
	if !oracle.Enabled {
		return nil
	}
	if oracle.APIKey == "" {
		return fmt.Errorf("oracle enabled but apikey is empty")
	}
	if oracle.Timeout <= 0 {
		return fmt.Errorf("oracle timeout must be positive, got %s", oracle.Timeout)
	}
	return nil
}
