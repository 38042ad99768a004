package repositories

import (
	"context"
	"database/sql"
	"strings"

	"blogapi/internal/domain"
	"blogapi/internal/domain/models"
)

// PostRepository wraps DB access for posts and their category links.
type PostRepository struct {
	DB *sql.DB
}

const postColumns = `
	p.id, p.title, p.content, p.status, p.author_id,
	COALESCE(u.name, ''),
	COALESCE(DATE_FORMAT(p.created_at, '%Y-%m-%d %H:%i:%s'), ''),
	COALESCE(DATE_FORMAT(p.updated_at, '%Y-%m-%d %H:%i:%s'), '')`

const postSelect = `SELECT ` + postColumns + ` FROM posts p LEFT JOIN users u ON u.id = p.author_id`

func scanPost(scan func(dest ...any) error) (models.Post, error) {
	var p models.Post
	err := scan(&p.ID, &p.Title, &p.Content, &p.Status, &p.AuthorID, &p.AuthorName, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// List returns a window of posts filtered by status, plus the total
// count under the same filter.
func (r PostRepository) List(ctx context.Context, statuses []string, skip, take int, paginated bool) ([]models.Post, int, error) {
	filter, filterArgs := statusFilter(statuses)
	filter = strings.Replace(filter, "status", "p.status", 1)

	query := postSelect + ` WHERE 1=1` + filter + ` ORDER BY p.id DESC`
	args := append([]any{}, filterArgs...)
	if paginated {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, take, skip)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows.Scan)
		if err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}

	total := len(posts)
	if paginated {
		countFilter, countArgs := statusFilter(statuses)
		err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE 1=1`+countFilter, countArgs...).Scan(&total)
		if err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
	}
	return posts, total, nil
}

// FindByID loads a single post with its categories attached.
func (r PostRepository) FindByID(ctx context.Context, id int64) (models.Post, error) {
	row := r.DB.QueryRowContext(ctx, postSelect+` WHERE p.id = ? LIMIT 1`, id)
	p, err := scanPost(row.Scan)
	if err == sql.ErrNoRows {
		return models.Post{}, domain.NotFoundError{Entity: "Post", Key: id}
	}
	if err != nil {
		return models.Post{}, domain.InternalError{Err: err}
	}

	cats, err := r.categoriesOf(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	p.Categories = cats
	return p, nil
}

// Create inserts the post and its category links in one transaction.
func (r PostRepository) Create(ctx context.Context, p models.Post, categoryIDs []int64) (models.Post, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Post{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO posts (title, content, status, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())`,
		p.Title, p.Content, p.Status, p.AuthorID)
	if err != nil {
		return models.Post{}, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()

	if err := replaceCategories(ctx, tx, id, categoryIDs); err != nil {
		return models.Post{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Post{}, domain.InternalError{Err: err}
	}
	return r.FindByID(ctx, id)
}

// Update rewrites the post fields and replaces its category links.
func (r PostRepository) Update(ctx context.Context, p models.Post, categoryIDs []int64) (models.Post, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Post{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE posts SET title = ?, content = ?, status = ?, updated_at = NOW()
		WHERE id = ?`,
		p.Title, p.Content, p.Status, p.ID); err != nil {
		return models.Post{}, domain.InternalError{Err: err}
	}

	if categoryIDs != nil {
		if err := replaceCategories(ctx, tx, p.ID, categoryIDs); err != nil {
			return models.Post{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return models.Post{}, domain.InternalError{Err: err}
	}
	return r.FindByID(ctx, p.ID)
}

func (r PostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Entity: "Post", Key: id}
	}
	return nil
}

func (r PostRepository) categoriesOf(ctx context.Context, postID int64) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.name, COALESCE(c.description, '')
		FROM categories c
		JOIN post_categories pc ON pc.category_id = c.id
		WHERE pc.post_id = ?
		ORDER BY c.id`, postID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	cats := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func replaceCategories(ctx context.Context, tx *sql.Tx, postID int64, categoryIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_categories WHERE post_id = ?`, postID); err != nil {
		return domain.InternalError{Err: err}
	}
	for _, cid := range categoryIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO post_categories (post_id, category_id) VALUES (?, ?)`, postID, cid); err != nil {
			return domain.InternalError{Err: err}
		}
	}
	return nil
}
