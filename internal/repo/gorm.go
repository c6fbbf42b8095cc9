package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pos_shop/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func OpenSQLite(ctx context.Context, dsn string) (*GormRepo, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite catalog: %w", err)
	}
	return newGormRepo(ctx, db)
}

func OpenPostgres(ctx context.Context, dsn string) (*GormRepo, error) {
	if dsn == "" {
		return nil, fmt.Errorf("CATALOG_DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
		NowFunc:     func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres catalog: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	configurePool(sqlDB)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping catalog db: %w", err)
	}
	return newGormRepo(ctx, db)
}

func newGormRepo(ctx context.Context, db *gorm.DB) (*GormRepo, error) {
	if err := db.WithContext(ctx).AutoMigrate(&models.Product{}); err != nil {
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}
	return &GormRepo{DB: db}, nil
}

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 10
		maxIdleConns    = 5
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

func (r *GormRepo) LoadAll(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) GetByID(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Save rewrites the products table in a single transaction.
func (r *GormRepo) Save(ctx context.Context, products []models.Product) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}
		return tx.CreateInBatches(&products, 100).Error
	})
}

func (r *GormRepo) Close() error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ ProductRepo = (*GormRepo)(nil)
