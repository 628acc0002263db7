package product

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var now = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "price", "category", "image_url", "description", "created_by", "created_at"})
}

func TestList_BuildsFilteredQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products WHERE LOWER\\(category\\)").
		WithArgs("grocery", "%rice%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT id, name, price, category, image_url, description, created_by, created_at FROM products WHERE").
		WithArgs("grocery", "%rice%", 20, 0).
		WillReturnRows(productRows().
			AddRow(1, "Basmati Rice", 100.00, "grocery", nil, nil, 99, now))
	mock.ExpectQuery("SELECT DISTINCT category FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("dairy").AddRow("grocery"))

	res, err := repo.List(ListParams{Category: "grocery", Search: "rice", Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if res.Total != 1 || len(res.Products) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Products[0].Name != "Basmati Rice" {
		t.Fatalf("unexpected product: %+v", res.Products[0])
	}
	if len(res.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %v", res.Categories)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestList_OffsetFollowsPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	mock.ExpectQuery("FROM products ORDER BY created_at DESC LIMIT").
		WithArgs(10, 20).
		WillReturnRows(productRows())
	mock.ExpectQuery("SELECT DISTINCT category FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"category"}))

	res, err := repo.List(ListParams{Page: 3, Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if res.Page != 3 || res.Limit != 10 || res.Total != 42 {
		t.Fatalf("unexpected paging: %+v", res)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdate_OwnerMismatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// id and owner are matched in one statement, zero rows means either
	mock.ExpectQuery("UPDATE products").
		WithArgs("Basmati Rice", 120.00, "grocery", nil, nil, 1, 8).
		WillReturnRows(productRows())

	_, err = repo.Update(1, 8, Product{Name: "Basmati Rice", Price: 120.00, Category: "grocery"})
	if err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDelete_OwnerMismatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("DELETE FROM products").
		WithArgs(1, 8).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(1, 8); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	mock.ExpectExec("DELETE FROM products").
		WithArgs(1, 99).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(1, 99); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT id, name, price, category, image_url, description, created_by, created_at FROM products WHERE id").
		WithArgs(404).
		WillReturnRows(productRows())

	if _, err := repo.GetByID(404); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
