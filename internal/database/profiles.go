package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"estudio/internal/models"
)

const profileColumns = `id, full_name, email, phone, monthly_hours_limit,
	daily_hours_limit, hours_used_this_month, hours_reset_date, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*models.Profile, error) {
	var p models.Profile
	var resetDate sql.NullTime
	err := row.Scan(
		&p.ID,
		&p.FullName,
		&p.Email,
		&p.Phone,
		&p.MonthlyHoursLimit,
		&p.DailyHoursLimit,
		&p.HoursUsedThisMonth,
		&resetDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if resetDate.Valid {
		p.HoursResetDate = resetDate.Time
	}
	return &p, nil
}

func (db *DB) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`

	profile, err := scanProfile(db.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (db *DB) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY full_name`

	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (db *DB) CreateProfile(ctx context.Context, profile *models.Profile) error {
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	var resetDate any
	if !profile.HoursResetDate.IsZero() {
		resetDate = profile.HoursResetDate
	}

	query := `INSERT INTO profiles (` + profileColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.db.ExecContext(ctx, query,
		profile.ID,
		profile.FullName,
		profile.Email,
		profile.Phone,
		profile.MonthlyHoursLimit,
		profile.DailyHoursLimit,
		profile.HoursUsedThisMonth,
		resetDate,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (db *DB) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	profile.UpdatedAt = time.Now()

	var resetDate any
	if !profile.HoursResetDate.IsZero() {
		resetDate = profile.HoursResetDate
	}

	query := `UPDATE profiles
	          SET full_name = ?, email = ?, phone = ?, monthly_hours_limit = ?,
	              daily_hours_limit = ?, hours_used_this_month = ?,
	              hours_reset_date = ?, updated_at = ?
	          WHERE id = ?`

	result, err := db.db.ExecContext(ctx, query,
		profile.FullName,
		profile.Email,
		profile.Phone,
		profile.MonthlyHoursLimit,
		profile.DailyHoursLimit,
		profile.HoursUsedThisMonth,
		resetDate,
		profile.UpdatedAt,
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("profile %s not found", profile.ID)
	}
	return nil
}

// IncrementHoursUsed bumps the monthly counter in a single statement. It is
// deliberately separate from booking creation; the pair is best-effort, not
// a transaction.
func (db *DB) IncrementHoursUsed(ctx context.Context, id string, delta float64) error {
	query := `UPDATE profiles
	          SET hours_used_this_month = hours_used_this_month + ?, updated_at = ?
	          WHERE id = ?`

	result, err := db.db.ExecContext(ctx, query, delta, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to increment hours used: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("profile %s not found", id)
	}
	return nil
}

func (db *DB) GetRole(ctx context.Context, userID string) (string, error) {
	var role string
	err := db.db.QueryRowContext(ctx, `SELECT role FROM user_roles WHERE user_id = ?`, userID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RoleMember, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get role: %w", err)
	}
	return role, nil
}

func (db *DB) SetRole(ctx context.Context, userID, role string) error {
	query := `INSERT INTO user_roles (user_id, role) VALUES (?, ?)
	          ON CONFLICT(user_id) DO UPDATE SET role = excluded.role`

	_, err := db.db.ExecContext(ctx, query, userID, role)
	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}
	return nil
}

func (db *DB) ListAdminIDs(ctx context.Context) ([]string, error) {
	rows, err := db.db.QueryContext(ctx, `SELECT user_id FROM user_roles WHERE role = ? ORDER BY user_id`, models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
