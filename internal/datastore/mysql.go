package datastore

import (
	"fmt"

	sqldriver "github.com/go-sql-driver/mysql"
	"github.com/surimlab/challenge500/internal/conf"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// MySQLStore implements DataStore for MySQL
type MySQLStore struct {
	DataStore
	Settings *conf.Settings
}

func validateMySQLConfig(settings *conf.Settings) error {
	out := settings.Output.MySQL
	if out.Username == "" || out.Database == "" || out.Host == "" {
		return fmt.Errorf("incomplete MySQL configuration")
	}
	return nil
}

// Open sets up the MySQL database connection
func (store *MySQLStore) Open() error {
	if err := validateMySQLConfig(store.Settings); err != nil {
		return err
	}

	out := store.Settings.Output.MySQL
	dsnConfig := sqldriver.NewConfig()
	dsnConfig.User = out.Username
	dsnConfig.Passwd = out.Password
	dsnConfig.Net = "tcp"
	dsnConfig.Addr = fmt.Sprintf("%s:%s", out.Host, out.Port)
	dsnConfig.DBName = out.Database
	dsnConfig.ParseTime = true
	dsnConfig.Params = map[string]string{"charset": "utf8mb4"}
	dsn := dsnConfig.FormatDSN()

	newLogger := createGormLogger()

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return fmt.Errorf("failed to open MySQL database: %w", err)
	}

	store.DB = db
	return performAutoMigration(db, store.Settings.Debug, "MySQL", dsnConfig.Addr)
}

func (store *MySQLStore) Close() error {
	if store.DB == nil {
		return nil
	}
	sqlDB, err := store.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying MySQL connection: %w", err)
	}
	return sqlDB.Close()
}
