package storage

import (
	"context"
	"database/sql"
	"errors"

	"HRPolicyGateway/internal/models"

	"golang.org/x/crypto/bcrypt"
	"modernc.org/sqlite"
)

var (
	ErrUsernameExists = errors.New("username already exists")
	ErrNotFound       = errors.New("not found")
	ErrBadCredentials = errors.New("invalid credentials")
)

// sqlite 고유 제약 위반 코드
const sqliteConstraintUnique = 2067

func (d *DB) CreateCredential(ctx context.Context, username, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = d.db.ExecContext(ctx,
		"INSERT INTO credentials(username, password_hash) VALUES(?, ?)",
		models.NormalizeUser(username), string(hashedPassword))
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqliteConstraintUnique {
			return ErrUsernameExists
		}
		return err
	}
	return nil
}

func (d *DB) GetCredential(ctx context.Context, username string) (models.Credential, error) {
	var cred models.Credential
	row := d.db.QueryRowContext(ctx,
		"SELECT username, password_hash FROM credentials WHERE username = ?",
		models.NormalizeUser(username))
	if err := row.Scan(&cred.Username, &cred.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cred, ErrNotFound
		}
		return cred, err
	}
	return cred, nil
}

// VerifyPassword checks password against the stored bcrypt hash. Unknown users
// and mismatches both yield ErrBadCredentials.
func (d *DB) VerifyPassword(ctx context.Context, username, password string) error {
	cred, err := d.GetCredential(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrBadCredentials
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return ErrBadCredentials
	}
	return nil
}
