package database

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/rpupo63/readinglog/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	bookRepo  *BookRepo
	postStore *PostStore
}

// New initializes the Book Notes repositories on a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		bookRepo: NewBookRepo(db),
	}
}

// NewInMemory initializes the Blog store, which lives only as long as the process.
func NewInMemory(opts ...PostStoreOption) Database {
	return Database{
		postStore: NewPostStore(opts...),
	}
}

// Accessor methods for each repository

func (d Database) BookRepo() *BookRepo {
	return d.bookRepo
}

func (d Database) PostStore() *PostStore {
	return d.postStore
}

// DSN builds the PostgreSQL connection string. DATABASE_URL wins; otherwise the
// PG* variables are used with the same defaults psql uses.
func DSN(c map[string]string) string {
	if dsn := config.GetString(c, "DATABASE_URL", ""); dsn != "" {
		return dsn
	}

	u := url.URL{
		Scheme: "postgres",
		User: url.UserPassword(
			config.GetString(c, "PGUSER", "postgres"),
			config.GetString(c, "PGPASSWORD", ""),
		),
		Host: fmt.Sprintf("%s:%d",
			config.GetString(c, "PGHOST", "localhost"),
			config.GetInt(c, "PGPORT", 5432),
		),
		Path: "/" + config.GetString(c, "PGDATABASE", "booknotes"),
	}
	q := url.Values{}
	q.Set("sslmode", config.GetString(c, "PGSSLMODE", "disable"))
	u.RawQuery = q.Encode()
	return u.String()
}

// Open connects to PostgreSQL and, when DB_REPLICA_DSN is set, routes reads to the replica.
func Open(c map[string]string) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  DSN(c),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if replica := config.GetString(c, "DB_REPLICA_DSN", ""); replica != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  replica,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(config.GetInt(c, "DB_MAX_OPEN_CONNS", 10))
	sqlDB.SetMaxIdleConns(config.GetInt(c, "DB_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}

	return db, nil
}
