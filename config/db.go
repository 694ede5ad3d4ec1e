package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hotel-reservations/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"

	defaultDBName = "hotel_reservations"
)

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	pass, _ := u.User.Password()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	cfg := newMySQLConfig(u.User.Username(), pass, u.Hostname(), port, dbName)
	for key, values := range u.Query() {
		if len(values) > 0 && key != "parseTime" && key != "loc" && key != "charset" {
			cfg.Params[key] = values[0]
		}
	}
	return cfg.FormatDSN(), dbName, nil
}

func newMySQLConfig(user, pass, host, port, dbName string) *mysqldriver.Config {
	cfg := mysqldriver.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = dbName
	cfg.ParseTime = true
	cfg.Loc = time.Local // วันที่เข้าพักสร้างเป็นเที่ยงคืน time.Local (services.dateOnly)
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg
}

func resolveMySQLDSN() (string, error) {
	raw := envOrDefault("MYSQL_URL", "")
	if raw == "" {
		raw = envOrDefault("DATABASE_URL", "")
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			dsn, _, err := mysqlDSNFromURL(raw)
			return dsn, err
		}
		return raw, nil
	}

	cfg := newMySQLConfig(
		envOrDefault("DB_USER", "root"),
		envOrDefault("DB_PASS", ""),
		envOrDefault("DB_HOST", "127.0.0.1"),
		envOrDefault("DB_PORT", "3306"),
		envOrDefault("DB_NAME", defaultDBName),
	)
	return cfg.FormatDSN(), nil
}

// resolvePostgresDSN: DATABASE_URL (postgres://...) หรือประกอบจาก DB_*
func resolvePostgresDSN() string {
	if raw := envOrDefault("DATABASE_URL", ""); raw != "" {
		return raw
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		envOrDefault("DB_HOST", "localhost"),
		envOrDefault("DB_PORT", "5432"),
		envOrDefault("DB_USER", "postgres"),
		envOrDefault("DB_PASS", ""),
		envOrDefault("DB_NAME", defaultDBName),
		envOrDefault("DB_SSLMODE", "disable"),
	)
}

func dialector(driver string) (gorm.Dialector, error) {
	switch driver {
	case DriverMySQL:
		dsn, err := resolveMySQLDSN()
		if err != nil {
			return nil, err
		}
		// SkipInitializeWithVersion: ไม่ต้องต่อ DB ตอน Open
		return mysql.New(mysql.Config{DSN: dsn, SkipInitializeWithVersion: true}), nil
	case DriverPostgres:
		return postgres.Open(resolvePostgresDSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (expected %q or %q)", driver, DriverMySQL, DriverPostgres)
	}
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// ConnectDatabase opens the pool without requiring the server to be up:
// reachability is checked per operation by the reservation store, so a
// database that comes up later is picked up without a restart.
func ConnectDatabase(cfg *Config, log logger.Logger) (*gorm.DB, error) {
	d, err := dialector(cfg.DBDriver)
	if err != nil {
		return nil, err
	}

	newLogger := gormlogger.New(
		logger.GormWriter{Log: log},
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(cfg.DBLogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(d, &gorm.Config{
		Logger:               newLogger,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		log.Warn("database not reachable at startup; requests will retry per operation",
			"driver", cfg.DBDriver, "error", err)
	} else {
		log.Info("database connection established", "driver", cfg.DBDriver)
	}

	return db, nil
}
