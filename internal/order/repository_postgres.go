package order

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// checkoutCartQuery reads the caller's cart joined with current product
// data and locks the cart rows. The lock serializes concurrent checkouts
// for one user: the transaction that loses the race re-reads after the
// winner commits, finds no rows, and fails with ErrEmptyCart instead of
// producing a second order from the same cart. A cart row whose product
// was deleted in the meantime is simply absent from the join.
const checkoutCartQuery = `
        SELECT ci.product_id, ci.quantity, p.name, p.price
        FROM cart_items ci
        JOIN products p ON p.id = ci.product_id
        WHERE ci.user_id = $1
        FOR UPDATE OF ci
    `

// Checkout runs the whole cart-to-order conversion inside one transaction
// on a dedicated connection. Any failure before commit rolls everything
// back and leaves the cart untouched.
func (r *PostgresRepository) Checkout(ctx context.Context, userID int) (Order, []OrderItem, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Order{}, nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, checkoutCartQuery, userID)
	if err != nil {
		return Order{}, nil, err
	}

	items := make([]OrderItem, 0)
	total := 0.0
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.Name, &it.Price); err != nil {
			rows.Close()
			return Order{}, nil, err
		}
		total += it.Price * float64(it.Quantity)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return Order{}, nil, err
	}
	rows.Close()

	if len(items) == 0 {
		return Order{}, nil, ErrEmptyCart
	}

	ord := Order{UserID: userID, Total: total, Status: StatusConfirmed}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, total, status)
         VALUES ($1, $2, $3)
         RETURNING id, created_at`,
		userID, total, StatusConfirmed,
	).Scan(&ord.ID, &ord.CreatedAt)
	if err != nil {
		return Order{}, nil, err
	}

	// snapshot name and price exactly as read above, never re-read
	for i := range items {
		items[i].OrderID = ord.ID
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, name, price, quantity)
             VALUES ($1, $2, $3, $4, $5)`,
			ord.ID, items[i].ProductID, items[i].Name, items[i].Price, items[i].Quantity)
		if err != nil {
			return Order{}, nil, err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return Order{}, nil, err
	}

	if err := tx.Commit(); err != nil {
		return Order{}, nil, err
	}
	return ord, items, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, total, status, created_at
         FROM orders WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) ItemsForOrders(orderIDs []int) ([]OrderItem, error) {
	if len(orderIDs) == 0 {
		return []OrderItem{}, nil
	}

	rows, err := r.db.Query(
		`SELECT order_id, product_id, name, price, quantity
         FROM order_items
         WHERE order_id = ANY($1::int[])
         ORDER BY order_id`,
		pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItem, 0)
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.OrderID, &it.ProductID, &it.Name, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
