package product

import (
	"database/sql"
	"fmt"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productColumns = `id, name, price, category, image_url, description, created_by, created_at`

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(
		`INSERT INTO products (name, price, category, image_url, description, created_by)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at`,
		p.Name, p.Price, p.Category, p.ImageURL, p.Description, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) List(params ListParams) (ListResult, error) {
	conditions := make([]string, 0, 2)
	values := make([]interface{}, 0, 4)

	if params.Category != "" {
		values = append(values, params.Category)
		conditions = append(conditions, fmt.Sprintf("LOWER(category) = LOWER($%d)", len(values)))
	}
	if params.Search != "" {
		values = append(values, "%"+params.Search+"%")
		n := len(values)
		conditions = append(conditions,
			fmt.Sprintf("(LOWER(name) LIKE LOWER($%d) OR LOWER(description) LIKE LOWER($%d))", n, n))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products `+where, values...).Scan(&total); err != nil {
		return ListResult{}, err
	}

	values = append(values, params.Limit, (params.Page-1)*params.Limit)
	query := fmt.Sprintf(
		`SELECT %s FROM products %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		productColumns, where, len(values)-1, len(values))

	rows, err := r.db.Query(query, values...)
	if err != nil {
		return ListResult{}, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.ImageURL, &p.Description, &p.CreatedBy, &p.CreatedAt); err != nil {
			return ListResult{}, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return ListResult{}, err
	}

	catRows, err := r.db.Query(`SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return ListResult{}, err
	}
	defer catRows.Close()

	categories := make([]string, 0)
	for catRows.Next() {
		var cat string
		if err := catRows.Scan(&cat); err != nil {
			return ListResult{}, err
		}
		categories = append(categories, cat)
	}
	if err := catRows.Err(); err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Products:   products,
		Total:      total,
		Page:       params.Page,
		Limit:      params.Limit,
		Categories: categories,
	}, nil
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	var p Product
	err := r.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.ImageURL, &p.Description, &p.CreatedBy, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) ListByOwner(ownerID int) ([]Product, error) {
	rows, err := r.db.Query(
		`SELECT `+productColumns+` FROM products WHERE created_by = $1 ORDER BY created_at DESC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.ImageURL, &p.Description, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update writes only when id and owner match in the same statement, so a
// miss never reveals whether the product exists.
func (r *PostgresRepository) Update(id, ownerID int, p Product) (Product, error) {
	err := r.db.QueryRow(
		`UPDATE products
         SET name=$1, price=$2, category=$3, image_url=$4, description=$5
         WHERE id=$6 AND created_by=$7
         RETURNING `+productColumns,
		p.Name, p.Price, p.Category, p.ImageURL, p.Description, id, ownerID,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.ImageURL, &p.Description, &p.CreatedBy, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return Product{}, ErrNotOwner
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Delete(id, ownerID int) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = $1 AND created_by = $2`, id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotOwner
	}
	return nil
}
