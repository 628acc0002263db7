package cart

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const linesQuery = `
        SELECT ci.id, ci.quantity, ci.created_at,
               p.id AS product_id, p.name, p.price, p.category, p.image_url,
               (ci.quantity * p.price) AS item_total
        FROM cart_items ci
        JOIN products p ON ci.product_id = p.id
        WHERE ci.user_id = $1
        ORDER BY ci.created_at DESC
    `

func (r *PostgresRepository) Add(userID, productID, qty int) (CartItem, error) {
	var exists int
	err := r.db.QueryRow(`SELECT id FROM products WHERE id = $1`, productID).Scan(&exists)
	if err == sql.ErrNoRows {
		return CartItem{}, ErrProductNotFound
	}
	if err != nil {
		return CartItem{}, err
	}

	var item CartItem
	err = r.db.QueryRow(
		`INSERT INTO cart_items (user_id, product_id, quantity)
         VALUES ($1, $2, $3)
         ON CONFLICT (user_id, product_id)
         DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
         RETURNING id, user_id, product_id, quantity, created_at`,
		userID, productID, qty,
	).Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt)
	if err != nil {
		return CartItem{}, err
	}
	return item, nil
}

func (r *PostgresRepository) Lines(userID int) ([]CartLine, error) {
	rows, err := r.db.Query(linesQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]CartLine, 0)
	for rows.Next() {
		var l CartLine
		if err := rows.Scan(&l.ID, &l.Quantity, &l.CreatedAt,
			&l.ProductID, &l.Name, &l.Price, &l.Category, &l.ImageURL, &l.ItemTotal); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *PostgresRepository) UpdateItem(itemID, userID, qty int) (CartItem, error) {
	var item CartItem
	err := r.db.QueryRow(
		`UPDATE cart_items SET quantity = $1
         WHERE id = $2 AND user_id = $3
         RETURNING id, user_id, product_id, quantity, created_at`,
		qty, itemID, userID,
	).Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return CartItem{}, ErrItemNotFound
	}
	if err != nil {
		return CartItem{}, err
	}
	return item, nil
}

func (r *PostgresRepository) RemoveItem(itemID, userID int) error {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) Clear(userID int) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
