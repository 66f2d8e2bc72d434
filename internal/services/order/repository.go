package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"bella-vista/internal/database"
	"bella-vista/internal/models"
)

const (
	insertOrderRowSQL = `
		INSERT INTO orders (customer_id, item_name, quantity, total_amount, payment_method, address, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	updatePaymentMethodSQL = `
		UPDATE orders SET payment_method = $1 WHERE customer_id = $2`

	updateDeliveryDetailsSQL = `
		UPDATE orders SET address = $1, phone = $2 WHERE customer_id = $3`

	ordersByCustomerSQL = `
		SELECT customer_id, item_name, quantity, total_amount, payment_method, address, phone, created_at
		FROM orders WHERE customer_id = $1 ORDER BY created_at, item_name`
)

// Repository persists order rows in PostgreSQL
type Repository struct {
	db *database.DB
}

// NewRepository creates a new order repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// InsertOrderRows persists all rows of one cart inside a single
// transaction so a failure mid-loop never leaves a partial order.
func (r *Repository) InsertOrderRows(ctx context.Context, rows []models.OrderRow) error {
	return r.db.InTx(ctx, func(tx pgx.Tx) error {
		for _, row := range rows {
			_, err := tx.Exec(ctx, insertOrderRowSQL,
				row.CustomerID, row.ItemName, row.Quantity, row.TotalAmount.String(),
				string(row.PaymentMethod), row.Address, row.Phone)
			if err != nil {
				return fmt.Errorf("failed to insert order row for %s: %w", row.ItemName, err)
			}
		}
		return nil
	})
}

// UpdatePaymentMethod sets the payment method on every row of the
// customer's order. Updating zero rows is not an error.
func (r *Repository) UpdatePaymentMethod(ctx context.Context, customerID string, method models.PaymentMethod) error {
	if err := r.db.Exec(ctx, updatePaymentMethodSQL, string(method), customerID); err != nil {
		return fmt.Errorf("failed to update payment method: %w", err)
	}
	return nil
}

// UpdateDeliveryDetails sets address and phone on every row of the
// customer's order. Updating zero rows is not an error.
func (r *Repository) UpdateDeliveryDetails(ctx context.Context, customerID, address, phone string) error {
	if err := r.db.Exec(ctx, updateDeliveryDetailsSQL, address, phone, customerID); err != nil {
		return fmt.Errorf("failed to update delivery details: %w", err)
	}
	return nil
}

// OrdersByCustomer returns the persisted rows for one customer id.
func (r *Repository) OrdersByCustomer(ctx context.Context, customerID string) ([]models.OrderRow, error) {
	rows, err := r.db.Query(ctx, ordersByCustomerSQL, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []models.OrderRow
	for rows.Next() {
		var row models.OrderRow
		var total string
		var method string
		err := rows.Scan(&row.CustomerID, &row.ItemName, &row.Quantity, &total,
			&method, &row.Address, &row.Phone, &row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		row.TotalAmount, err = decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("failed to parse total amount: %w", err)
		}
		row.PaymentMethod = models.PaymentMethod(method)
		result = append(result, row)
	}

	return result, rows.Err()
}
