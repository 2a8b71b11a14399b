// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelogapp/cinelog/internal/platform/database/schema"
	"github.com/cinelogapp/cinelog/internal/platform/dberr"
)

// # Repository Implementation

// userRepository is the PostgreSQL implementation of [UserRepository].
type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a PostgreSQL-backed [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// userColumns returns the ordered select list shared by the account queries.
func userColumns() string {
	return fmt.Sprintf(
		"%s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.UserAccount.UserID,
		schema.UserAccount.Platform,
		schema.UserAccount.DisplayName,
		schema.UserAccount.Email,
		schema.UserAccount.PasswordHash,
		schema.UserAccount.SignupTime,
		schema.UserAccount.LastSigninTime,
		schema.UserAccount.AttendanceCount,
		schema.UserAccount.Deleted,
	)
}

/*
FindByID returns the account with the given ID.

Description: Soft-deleted rows are returned too; callers inspect [User.Deleted].

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (repository *userRepository) FindByID(context context.Context, userID string) (*User, error) {

	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s = $1`,
		userColumns(),
		schema.UserAccount.Table,
		schema.UserAccount.UserID,
	)

	user := &User{}
	err := repository.pool.QueryRow(context, query, userID).Scan(
		&user.UserID,
		&user.Platform,
		&user.DisplayName,
		&user.Email,
		&user.PasswordHash,
		&user.SignupTime,
		&user.LastSigninTime,
		&user.AttendanceCount,
		&user.Deleted,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_user_find_by_id_failed")
	}

	return user, nil
}

/*
Create persists a brand-new user account.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: CONFLICT on duplicate display name, or persistence failures
*/
func (repository *userRepository) Create(context context.Context, user *User) error {

	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.UserAccount.Table,
		userColumns(),
	)

	_, err := repository.pool.Exec(context, query,
		user.UserID,
		user.Platform,
		user.DisplayName,
		user.Email,
		user.PasswordHash,
		user.SignupTime,
		user.LastSigninTime,
		user.AttendanceCount,
		user.Deleted,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_user_create_failed")
	}

	return nil
}

/*
RecordSignIn stamps the latest sign-in time and optionally counts attendance.

Description: Conditional UPDATE keyed on a live account. The attendance flag is
folded into the increment so the stamp and the count move in one statement.

Parameters:
  - context: context.Context
  - userID: string
  - signinTime: time.Time
  - attendance: bool

Returns:
  - bool: True when a live account row was updated
  - error: Persistence failures
*/
func (repository *userRepository) RecordSignIn(context context.Context, userID string, signinTime time.Time, attendance bool) (bool, error) {

	increment := 0
	if attendance {
		increment = 1
	}

	query := fmt.Sprintf(
		`UPDATE %s
		    SET %s = $2,
		        %s = %s + $3
		  WHERE %s = $1 AND NOT %s`,
		schema.UserAccount.Table,
		schema.UserAccount.LastSigninTime,
		schema.UserAccount.AttendanceCount, schema.UserAccount.AttendanceCount,
		schema.UserAccount.UserID,
		schema.UserAccount.Deleted,
	)

	tag, err := repository.pool.Exec(context, query, userID, signinTime, increment)
	if err != nil {
		return false, dberr.Wrap(err, "postgres_user_record_signin_failed")
	}

	return tag.RowsAffected() == 1, nil
}

/*
UpdateDisplayName replaces the display name of a live account.

Parameters:
  - context: context.Context
  - userID: string
  - displayName: string

Returns:
  - bool: True when a live account row was updated
  - error: CONFLICT on duplicate display name, or persistence failures
*/
func (repository *userRepository) UpdateDisplayName(context context.Context, userID, displayName string) (bool, error) {

	query := fmt.Sprintf(
		`UPDATE %s SET %s = $2 WHERE %s = $1 AND NOT %s`,
		schema.UserAccount.Table,
		schema.UserAccount.DisplayName,
		schema.UserAccount.UserID,
		schema.UserAccount.Deleted,
	)

	tag, err := repository.pool.Exec(context, query, userID, displayName)
	if err != nil {
		return false, dberr.Wrap(err, "postgres_user_update_display_name_failed")
	}

	return tag.RowsAffected() == 1, nil
}

/*
DisplayNameTaken reports whether any account already owns the name.

Parameters:
  - context: context.Context
  - displayName: string

Returns:
  - bool: True when the name is in use
  - error: Database retrieval failures
*/
func (repository *userRepository) DisplayNameTaken(context context.Context, displayName string) (bool, error) {

	query := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.UserAccount.Table,
		schema.UserAccount.DisplayName,
	)

	var taken bool
	if err := repository.pool.QueryRow(context, query, displayName).Scan(&taken); err != nil {
		return false, dberr.Wrap(err, "postgres_user_display_name_taken_failed")
	}

	return taken, nil
}

/*
SoftDelete marks the account as deleted without removing the row.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - bool: True when a live account row was marked
  - error: Persistence failures
*/
func (repository *userRepository) SoftDelete(context context.Context, userID string) (bool, error) {

	query := fmt.Sprintf(
		`UPDATE %s SET %s = TRUE WHERE %s = $1 AND NOT %s`,
		schema.UserAccount.Table,
		schema.UserAccount.Deleted,
		schema.UserAccount.UserID,
		schema.UserAccount.Deleted,
	)

	tag, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return false, dberr.Wrap(err, "postgres_user_soft_delete_failed")
	}

	return tag.RowsAffected() == 1, nil
}
