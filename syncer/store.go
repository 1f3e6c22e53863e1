package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mmdatafocus/pos_sync_backend/models"
	"github.com/mmdatafocus/pos_sync_backend/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrMigrationPending is returned when a write targets a table that has
	// not been migrated into the running schema yet.
	ErrMigrationPending = errors.New("schema migration pending")

	// ErrEntityNotSupported is returned for change-sets targeting an entity
	// type with no registered binding.
	ErrEntityNotSupported = errors.New("entity type not supported")
)

// RecordStore is the persistence binding for one entity type. One statement
// per call; write atomicity comes from the store, not from this layer.
type RecordStore interface {
	// FindChangedSince returns wire rows with updated_at strictly greater
	// than since, oldest first.
	FindChangedSince(ctx context.Context, since time.Time) ([]any, error)
	// Upsert inserts the record or overwrites an existing row with the same
	// id, never raising a duplicate-key error.
	Upsert(ctx context.Context, rec Record) error
	// UpdateById rewrites the row keyed by the record's id and reports
	// gorm.ErrRecordNotFound when no row matched.
	UpdateById(ctx context.Context, rec Record) error
	// DeleteById removes the row if present. Deleting an absent id is not
	// an error.
	DeleteById(ctx context.Context, id string) error
}

// missingTable reports MySQL ER_NO_SUCH_TABLE, the signature of a pull or
// push racing a not-yet-migrated schema.
func missingTable(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1146
}

type orderStore struct {
	db *gorm.DB
}

func (s *orderStore) FindChangedSince(ctx context.Context, since time.Time) ([]any, error) {
	var rows []models.Order
	err := s.db.WithContext(ctx).
		Where("updated_at > ?", since).
		Order("updated_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, orderRowFromModel(row))
	}
	return out, nil
}

func (s *orderStore) Upsert(ctx context.Context, rec Record) error {
	order, ok := rec.(models.Order)
	if !ok {
		return fmt.Errorf("orders store: unexpected record type %T", rec)
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&order).Error
}

func (s *orderStore) UpdateById(ctx context.Context, rec Record) error {
	order, ok := rec.(models.Order)
	if !ok {
		return fmt.Errorf("orders store: unexpected record type %T", rec)
	}
	result := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", order.ID).
		Updates(order.Fillable())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *orderStore) DeleteById(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Order{}).Error
}

type productStore struct {
	db *gorm.DB
}

func (s *productStore) FindChangedSince(ctx context.Context, since time.Time) ([]any, error) {
	var rows []models.Product
	err := s.db.WithContext(ctx).
		Where("updated_at > ?", since).
		Order("updated_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, productRowFromModel(row))
	}
	return out, nil
}

func (s *productStore) Upsert(ctx context.Context, rec Record) error {
	product, ok := rec.(models.Product)
	if !ok {
		return fmt.Errorf("products store: unexpected record type %T", rec)
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&product).Error
}

func (s *productStore) UpdateById(ctx context.Context, rec Record) error {
	product, ok := rec.(models.Product)
	if !ok {
		return fmt.Errorf("products store: unexpected record type %T", rec)
	}
	result := s.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(product.Fillable())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *productStore) DeleteById(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Product{}).Error
}

// productSQLStore writes products through parameterized SQL instead of the
// gorm model binding. Deployments whose products schema is managed by an
// external migration job run this path until the model binding catches up.
// Datetimes are bound as local "YYYY-MM-DD HH:MM:SS" strings, booleans as
// 1/0, nullable text as a nil pointer.
type productSQLStore struct {
	db *gorm.DB
}

func (s *productSQLStore) FindChangedSince(ctx context.Context, since time.Time) ([]any, error) {
	var rows []models.Product
	err := s.db.WithContext(ctx).
		Raw("SELECT id, product_code, product_name, description, price, stock_quantity, is_active, updated_at FROM products WHERE updated_at > ? ORDER BY updated_at ASC", since).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, productRowFromModel(row))
	}
	return out, nil
}

func (s *productSQLStore) Upsert(ctx context.Context, rec Record) error {
	product, ok := rec.(models.Product)
	if !ok {
		return fmt.Errorf("products raw store: unexpected record type %T", rec)
	}
	err := s.db.WithContext(ctx).Exec(
		"INSERT INTO products (id, product_code, product_name, description, price, stock_quantity, is_active, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"+
			" ON DUPLICATE KEY UPDATE product_code = VALUES(product_code), product_name = VALUES(product_name), description = VALUES(description),"+
			" price = VALUES(price), stock_quantity = VALUES(stock_quantity), is_active = VALUES(is_active), updated_at = VALUES(updated_at)",
		product.ID,
		product.ProductCode,
		product.ProductName,
		product.Description,
		product.Price,
		product.StockQuantity,
		utils.BoolToInt(product.IsActive != nil && *product.IsActive),
		utils.FormatDateTime(product.UpdatedAt),
	).Error
	if missingTable(err) {
		return fmt.Errorf("%w: products", ErrMigrationPending)
	}
	return err
}

func (s *productSQLStore) UpdateById(ctx context.Context, rec Record) error {
	product, ok := rec.(models.Product)
	if !ok {
		return fmt.Errorf("products raw store: unexpected record type %T", rec)
	}
	result := s.db.WithContext(ctx).Exec(
		"UPDATE products SET product_code = ?, product_name = ?, description = ?, price = ?, stock_quantity = ?, is_active = ?, updated_at = ? WHERE id = ?",
		product.ProductCode,
		product.ProductName,
		product.Description,
		product.Price,
		product.StockQuantity,
		utils.BoolToInt(product.IsActive != nil && *product.IsActive),
		utils.FormatDateTime(product.UpdatedAt),
		product.ID,
	)
	if result.Error != nil {
		if missingTable(result.Error) {
			return fmt.Errorf("%w: products", ErrMigrationPending)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *productSQLStore) DeleteById(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Exec("DELETE FROM products WHERE id = ?", id).Error
	if missingTable(err) {
		return fmt.Errorf("%w: products", ErrMigrationPending)
	}
	return err
}
