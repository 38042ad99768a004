package repositories

import (
	"context"
	"database/sql"
	"strings"

	"blogapi/internal/domain"
	"blogapi/internal/domain/models"
)

// CommentRepository wraps DB access for post comments.
type CommentRepository struct {
	DB *sql.DB
}

const commentSelect = `
	SELECT c.id, c.post_id, c.author_id, COALESCE(u.name, ''), c.content, c.status,
	       COALESCE(DATE_FORMAT(c.created_at, '%Y-%m-%d %H:%i:%s'), '')
	FROM comments c LEFT JOIN users u ON u.id = c.author_id`

func scanComment(scan func(dest ...any) error) (models.Comment, error) {
	var cm models.Comment
	err := scan(&cm.ID, &cm.PostID, &cm.AuthorID, &cm.AuthorName, &cm.Content, &cm.Status, &cm.CreatedAt)
	return cm, err
}

// ListByPost returns a window of a post's comments filtered by status,
// plus the total count under the same filter.
func (r CommentRepository) ListByPost(ctx context.Context, postID int64, statuses []string, skip, take int, paginated bool) ([]models.Comment, int, error) {
	filter, filterArgs := statusFilter(statuses)

	query := commentSelect + ` WHERE c.post_id = ?` + strings.Replace(filter, "status", "c.status", 1) + ` ORDER BY c.id DESC`
	args := append([]any{postID}, filterArgs...)
	if paginated {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, take, skip)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		cm, err := scanComment(rows.Scan)
		if err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
		comments = append(comments, cm)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}

	total := len(comments)
	if paginated {
		countFilter, countArgs := statusFilter(statuses)
		err := r.DB.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM comments WHERE post_id = ?`+countFilter,
			append([]any{postID}, countArgs...)...).Scan(&total)
		if err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
	}
	return comments, total, nil
}

func (r CommentRepository) FindByID(ctx context.Context, id int64) (models.Comment, error) {
	row := r.DB.QueryRowContext(ctx, commentSelect+` WHERE c.id = ? LIMIT 1`, id)
	cm, err := scanComment(row.Scan)
	if err == sql.ErrNoRows {
		return models.Comment{}, domain.NotFoundError{Entity: "Comment", Key: id}
	}
	if err != nil {
		return models.Comment{}, domain.InternalError{Err: err}
	}
	return cm, nil
}

func (r CommentRepository) Create(ctx context.Context, cm models.Comment) (models.Comment, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO comments (post_id, author_id, content, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())`,
		cm.PostID, cm.AuthorID, cm.Content, cm.Status)
	if err != nil {
		return models.Comment{}, domain.InternalError{Err: err}
	}
	id, _ := res.LastInsertId()
	return r.FindByID(ctx, id)
}

func (r CommentRepository) Update(ctx context.Context, id int64, content, status string) (models.Comment, error) {
	if _, err := r.DB.ExecContext(ctx, `
		UPDATE comments SET content = ?, status = ?, updated_at = NOW() WHERE id = ?`,
		content, status, id); err != nil {
		return models.Comment{}, domain.InternalError{Err: err}
	}
	return r.FindByID(ctx, id)
}

func (r CommentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Entity: "Comment", Key: id}
	}
	return nil
}
