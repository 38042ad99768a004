package repositories

import (
	"context"
	"database/sql"

	"blogapi/internal/domain"
	"blogapi/internal/domain/models"
)

// ProfileRepository wraps DB access for the 1:1 user profile rows.
type ProfileRepository struct {
	DB *sql.DB
}

func (r ProfileRepository) FindByUserID(ctx context.Context, userID int64) (models.Profile, error) {
	var p models.Profile
	err := r.DB.QueryRowContext(ctx, `
		SELECT user_id, COALESCE(bio, ''), COALESCE(avatar_url, ''), COALESCE(website, ''), COALESCE(location, '')
		FROM profiles WHERE user_id = ? LIMIT 1`, userID).
		Scan(&p.UserID, &p.Bio, &p.AvatarURL, &p.Website, &p.Location)
	if err == sql.ErrNoRows {
		return models.Profile{}, domain.NotFoundError{Entity: "Profile", Key: userID}
	}
	if err != nil {
		return models.Profile{}, domain.InternalError{Err: err}
	}
	return p, nil
}

// Upsert writes the profile, creating the row on first save.
func (r ProfileRepository) Upsert(ctx context.Context, p models.Profile) (models.Profile, error) {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO profiles (user_id, bio, avatar_url, website, location)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE bio = VALUES(bio), avatar_url = VALUES(avatar_url),
			website = VALUES(website), location = VALUES(location)`,
		p.UserID, p.Bio, p.AvatarURL, p.Website, p.Location)
	if err != nil {
		return models.Profile{}, domain.InternalError{Err: err}
	}
	return r.FindByUserID(ctx, p.UserID)
}
