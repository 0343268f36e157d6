// config.go: loading and access for the application settings
package conf

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Settings holds the complete application configuration
type Settings struct {
	Debug bool // true to enable debug mode

	// Runtime values, not stored in config file
	Version   string `yaml:"-"` // Version from build
	BuildDate string `yaml:"-"` // Build date from build

	Main struct {
		Name string // name of this node, used to identify the source of entries
	}

	WebServer struct {
		Debug   bool   // true to enable debug mode for the web server
		Enabled bool   // true to enable web server
		Port    string // port for web server
	}

	Output struct {
		SQLite struct {
			Enabled bool   // true to enable sqlite output
			Path    string // path to sqlite database
		}

		MySQL struct {
			Enabled  bool   // true to enable mysql output
			Username string // username for mysql database
			Password string // password for mysql database
			Database string // database name for mysql database
			Host     string // host for mysql database
			Port     string // port for mysql database
		}
	}

	Challenge ChallengeConfig // submission rules
	Oracle    OracleConfig    // external scoring oracle
}

// ChallengeConfig defines the submission rules for the writing challenge
type ChallengeConfig struct {
	MaxBytes       int    // maximum UTF-8 byte length of a submission body
	MinBytes       int    // minimum UTF-8 byte length of a submission body
	DailyLimit     bool   // true to enforce one submission per owner per day
	Timezone       string // IANA timezone used to compute the submission day
	CandidateCount int    // number of arcana candidates offered per entry
}

// OracleConfig defines the external LLM scoring oracle settings
type OracleConfig struct {
	Enabled  bool          // true to enable the oracle; heuristic-only otherwise
	APIKey   string        // API key for the oracle service
	BaseURL  string        // base URL of the oracle API
	Model    string        // model identifier
	Timeout  time.Duration // per-request timeout
	CacheTTL time.Duration // response cache duration
}

// settingsInstance is the current settings instance
var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	viper.SetEnvPrefix("CHALLENGE500")
	viper.AutomaticEnv()

	// Set default values for each configuration parameter
	// function defined in defaults.go
	setDefaultConfig()

	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// No config file found, run on defaults and environment only
			log.Println("No config file found, using defaults")
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPaths returns the list of directories searched for config.yaml,
// in priority order.
func GetDefaultConfigPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fall back to working directory only
		return []string{"."}, nil //nolint:nilerr // missing home dir is not fatal
	}
	return []string{
		".",
		filepath.Join(homeDir, ".config", "challenge500"),
		"/etc/challenge500",
	}, nil
}

// GetSettings returns the current settings instance
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Setting returns the settings instance, loading it on first use.
func Setting() *Settings {
	once.Do(func() {
		if settingsInstance == nil {
			if _, err := Load(); err != nil {
				log.Fatalf("Error loading settings: %v", err)
			}
		}
	})
	return GetSettings()
}

// SetTestSettings replaces the settings instance. Intended for tests only.
func SetTestSettings(settings *Settings) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()
	settingsInstance = settings
}
