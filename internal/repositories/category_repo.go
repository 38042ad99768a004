package repositories

import (
	"context"
	"database/sql"

	"blogapi/internal/domain"
	"blogapi/internal/domain/models"
)

// CategoryRepository wraps DB access for categories.
type CategoryRepository struct {
	DB *sql.DB
}

func (r CategoryRepository) List(ctx context.Context, skip, take int, paginated bool) ([]models.Category, int, error) {
	query := `SELECT id, name, COALESCE(description, '') FROM categories ORDER BY name`
	args := []any{}
	if paginated {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, take, skip)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	defer rows.Close()

	cats := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}

	total := len(cats)
	if paginated {
		if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
	}
	return cats, total, nil
}

func (r CategoryRepository) FindByID(ctx context.Context, id int64) (models.Category, error) {
	var c models.Category
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(description, '') FROM categories WHERE id = ? LIMIT 1`, id).
		Scan(&c.ID, &c.Name, &c.Description)
	if err == sql.ErrNoRows {
		return models.Category{}, domain.NotFoundError{Entity: "Category", Key: id}
	}
	if err != nil {
		return models.Category{}, domain.InternalError{Err: err}
	}
	return c, nil
}

// Create inserts a category. Names are unique; a duplicate maps to the
// already-exists kind.
func (r CategoryRepository) Create(ctx context.Context, c models.Category) (models.Category, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO categories (name, description) VALUES (?, ?)`, c.Name, c.Description)
	if err != nil {
		if isDuplicate(err) {
			return models.Category{}, domain.AlreadyExistsError{Err: err}
		}
		return models.Category{}, domain.InternalError{Err: err}
	}
	c.ID, _ = res.LastInsertId()
	return c, nil
}

func (r CategoryRepository) Update(ctx context.Context, c models.Category) (models.Category, error) {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE categories SET name = ?, description = ? WHERE id = ?`,
		c.Name, c.Description, c.ID)
	if err != nil {
		if isDuplicate(err) {
			return models.Category{}, domain.AlreadyExistsError{Err: err}
		}
		return models.Category{}, domain.InternalError{Err: err}
	}
	return r.FindByID(ctx, c.ID)
}

func (r CategoryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Entity: "Category", Key: id}
	}
	return nil
}
