package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/dshills/scribe/internal/config"
)

// DocumentRecord is the documents table row.
type DocumentRecord struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Content   string    `gorm:"type:text;not null"`
	Revision  int64     `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName implements gorm's tabler.
func (DocumentRecord) TableName() string {
	return "documents"
}

func (r DocumentRecord) document() Document {
	return Document{
		ID:        r.Id.String(),
		Content:   r.Content,
		Revision:  r.Revision,
		UpdatedAt: r.UpdatedAt,
	}
}

// GormStore keeps documents in PostgreSQL through gorm.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore wraps an open database.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// OpenPostgres connects to PostgreSQL and configures the connection pool.
// SQL logging goes to l at warn level and above.
func OpenPostgres(cfg config.StoreConfig, l *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: gormLogger(l),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeSec) * time.Second)

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(&DocumentRecord{}); err != nil {
			return nil, fmt.Errorf("migrate documents: %w", err)
		}
	}
	return db, nil
}

func gormLogger(l *zap.Logger) logger.Interface {
	if l == nil {
		l = zap.NewNop()
	}
	return logger.New(
		zap.NewStdLog(l.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)
}

// Save implements Persister. Saving an existing document bumps its revision.
func (s *GormStore) Save(ctx context.Context, id, content string) error {
	u, err := parseID(id)
	if err != nil {
		return err
	}
	if err := checkSanitized(content); err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}

	rec := DocumentRecord{Id: u, Content: content, Revision: 1}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"content":    content,
			"revision":   gorm.Expr("documents.revision + 1"),
			"updated_at": time.Now(),
		}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}
	return nil
}

// Load implements Store.
func (s *GormStore) Load(ctx context.Context, id string) (Document, error) {
	u, err := parseID(id)
	if err != nil {
		return Document{}, err
	}
	var rec DocumentRecord
	err = s.db.WithContext(ctx).Where("id = ?", u).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Document{}, fmt.Errorf("load %s: %w", id, err)
	}
	return rec.document(), nil
}

// List implements Store. Documents are ordered by ID.
func (s *GormStore) List(ctx context.Context) ([]Document, error) {
	var recs []DocumentRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	out := make([]Document, len(recs))
	for i, r := range recs {
		out[i] = r.document()
	}
	return out, nil
}

// Delete implements Store.
func (s *GormStore) Delete(ctx context.Context, id string) error {
	u, err := parseID(id)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Where("id = ?", u).Delete(&DocumentRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Close releases the database connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Open builds the store selected by cfg.
func Open(cfg config.StoreConfig, l *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return NewMemoryStore(), nil
	case config.DriverPostgres:
		db, err := OpenPostgres(cfg, l)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
