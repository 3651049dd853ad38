package user

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"librarydb/internal/dberr"
)

// table metadata for constraint translation; names match db/migrations.
var table = dberr.Table{
	Name: "users",
	Uniques: map[string]string{
		"users_username_key": "username",
		"users_email_key":    "email",
	},
	Checks: map[string]dberr.Check{
		"users_role_check":   {Field: "role", Rule: "role in (member, admin, librarian)"},
		"users_status_check": {Field: "status", Rule: "status in (active, inactive, suspended)"},
	},
	Lengths: map[int]string{50: "username"},
}

const columns = `user_id, username, email, full_name, phone, role, status, last_login, created_at, updated_at`

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, u *User) error {
	// NULLIF makes a missing username surface as the store's not-null
	// violation instead of an empty string slipping past the constraint.
	const query = `
	INSERT INTO users (username, email, full_name, phone, role, status)
	VALUES (NULLIF($1, ''), NULLIF($2, ''), $3, $4,
	        COALESCE(NULLIF($5, ''), 'member'),
	        COALESCE(NULLIF($6, ''), 'active'))
	RETURNING user_id, role, status, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, u.Username, u.Email, u.FullName, u.Phone, u.Role, u.Status).
		Scan(&u.ID, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	return dberr.Translate(err, table)
}

func (r *PostgresRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	const query = `SELECT ` + columns + ` FROM users WHERE user_id = $1 LIMIT 1`
	return scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = `SELECT ` + columns + ` FROM users WHERE username = $1 LIMIT 1`
	return scanOne(r.db.QueryRow(ctx, query, username))
}

func (r *PostgresRepo) FindAll(ctx context.Context) ([]User, error) {
	const query = `SELECT ` + columns + ` FROM users ORDER BY user_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := scanInto(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update persists all mutable fields. updated_at is advanced by the
// touch_updated_at trigger, never set here.
func (r *PostgresRepo) Update(ctx context.Context, u *User) (bool, error) {
	const query = `
	UPDATE users
	SET username = NULLIF($2, ''), email = NULLIF($3, ''), full_name = $4,
	    phone = $5, role = $6, status = $7, last_login = $8
	WHERE user_id = $1
	`
	tag, err := r.db.Exec(ctx, query, u.ID, u.Username, u.Email, u.FullName, u.Phone, u.Role, u.Status, u.LastLogin)
	if err != nil {
		return false, dberr.Translate(err, table)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) (bool, error) {
	const query = `UPDATE users SET last_login = $2 WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanOne(row pgx.Row) (*User, error) {
	var u User
	if err := scanInto(row, &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func scanInto(row pgx.Row, u *User) error {
	return row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FullName, &u.Phone,
		&u.Role, &u.Status, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
}
