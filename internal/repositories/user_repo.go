package repositories

import (
	"context"
	"database/sql"

	"blogapi/internal/domain"
	"blogapi/internal/domain/models"
)

// UserRepository wraps DB access for the users table.
type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, uuid, name, email, role, is_active, COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')`

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.UUID, &u.Name, &u.Email, &u.Role, &u.IsActive, &u.CreatedAt)
	return u, err
}

// FindByUUID loads the user carried in token claims. Absent rows come
// back as domain.NotFoundError so the authenticator can reject cleanly.
func (r UserRepository) FindByUUID(ctx context.Context, uuid string) (models.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE uuid = ? LIMIT 1`, uuid)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return models.User{}, domain.NotFoundError{Entity: "User", Key: uuid}
	}
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}

func (r UserRepository) FindByID(ctx context.Context, id int64) (models.User, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return models.User{}, domain.NotFoundError{Entity: "User", Key: id}
	}
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	return u, nil
}

// FindCredentialsByEmail returns the user plus its password hash for
// the login flow.
func (r UserRepository) FindCredentialsByEmail(ctx context.Context, email string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, uuid, name, email, password_hash, role, is_active
		FROM users WHERE email = ? LIMIT 1`, email).
		Scan(&u.ID, &u.UUID, &u.Name, &u.Email, &hash, &u.Role, &u.IsActive)
	if err == sql.ErrNoRows {
		return models.User{}, "", domain.NotFoundError{Entity: "User", Key: email}
	}
	if err != nil {
		return models.User{}, "", domain.InternalError{Err: err}
	}
	return u, hash, nil
}

// List returns a window of users plus the total row count.
func (r UserRepository) List(ctx context.Context, skip, take int, paginated bool) ([]models.User, int, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id DESC`
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

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.UUID, &u.Name, &u.Email, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.InternalError{Err: err}
	}

	total := len(users)
	if paginated {
		if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
			return nil, 0, domain.InternalError{Err: err}
		}
	}
	return users, total, nil
}

// Create inserts a new account. Duplicate email maps to the
// already-exists kind.
func (r UserRepository) Create(ctx context.Context, u models.User, passwordHash string) (models.User, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (uuid, name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		u.UUID, u.Name, u.Email, passwordHash, u.Role, u.IsActive)
	if err != nil {
		if isDuplicate(err) {
			return models.User{}, domain.AlreadyExistsError{Err: err}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	u.ID, _ = res.LastInsertId()
	return u, nil
}

func (r UserRepository) Update(ctx context.Context, u models.User) (models.User, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET name = ?, email = ?, role = ?, is_active = ?, updated_at = NOW()
		WHERE id = ?`,
		u.Name, u.Email, u.Role, u.IsActive, u.ID)
	if err != nil {
		if isDuplicate(err) {
			return models.User{}, domain.AlreadyExistsError{Err: err}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		// distinguish a no-op update from a missing row
		if _, err := r.FindByID(ctx, u.ID); err != nil {
			return models.User{}, err
		}
	}
	return r.FindByID(ctx, u.ID)
}

func (r UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Entity: "User", Key: id}
	}
	return nil
}

// DeactivateByUUID flips is_active off. The same flag is re-checked by
// the authenticator on every request, so this revokes every
// outstanding token for the account.
func (r UserRepository) DeactivateByUUID(ctx context.Context, uuid string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET is_active = 0, updated_at = NOW() WHERE uuid = ?`, uuid)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Entity: "User", Key: uuid}
	}
	return nil
}
