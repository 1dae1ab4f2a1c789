package storage

import (
	"context"
	"database/sql"
	"fmt"

	"HRPolicyGateway/internal/models"
)

// SeedProfiles inserts profiles that are not on file yet. Existing rows win.
func (d *DB) SeedProfiles(ctx context.Context, profiles []models.Profile) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO profiles("user", years, dob, title, manager, salary, pto_balance)
		VALUES(?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT("user") DO NOTHING`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range profiles {
		user := models.NormalizeUser(p.User)
		if user == "" {
			return fmt.Errorf("SeedProfiles(): profile without user")
		}
		if _, err := stmt.ExecContext(ctx, user, p.Years, p.DOB, p.Title, p.Manager, p.Salary, p.PTOBalance); err != nil {
			return fmt.Errorf("SeedProfiles(): insert %s: %w", user, err)
		}
	}
	return tx.Commit()
}

func (d *DB) LoadProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT "user", years, dob, title, manager, salary, pto_balance
		FROM profiles
		ORDER BY "user"`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var (
			p                   models.Profile
			years               sql.NullFloat64
			dob, title, manager sql.NullString
			salary, ptoBalance  sql.NullInt64
		)
		if err := rows.Scan(&p.User, &years, &dob, &title, &manager, &salary, &ptoBalance); err != nil {
			return nil, err
		}
		if years.Valid {
			p.Years = &years.Float64
		}
		if dob.Valid {
			p.DOB = &dob.String
		}
		if title.Valid {
			p.Title = &title.String
		}
		if manager.Valid {
			p.Manager = &manager.String
		}
		if salary.Valid {
			p.Salary = &salary.Int64
		}
		if ptoBalance.Valid {
			v := int(ptoBalance.Int64)
			p.PTOBalance = &v
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
