// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package ticket

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/internal/platform/database/schema"
)

// # PostgreSQL Repository

// ticketRepository implements the [Repository] interface using pgx.
type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed ticket store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &ticketRepository{pool: pool}
}

/*
Create persists a new ticket row.

Parameters:
  - context: context.Context
  - ticket: *Ticket

Returns:
  - error: Constraint or execution failures
*/
func (repository *ticketRepository) Create(context context.Context, ticket *Ticket) error {
	s := schema.MediaTicket
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.Table,
		s.TicketID, s.MediaType, s.MediaID, s.UserID,
		s.TicketImagePath, s.WatchedTime, s.UpdateTime,
	)

	_, err := repository.pool.Exec(context, query,
		ticket.TicketID,
		ticket.MediaType,
		ticket.MediaID,
		ticket.UserID,
		ticket.TicketImagePath,
		ticket.WatchedTime,
		ticket.UpdateTime,
	)
	if err != nil {
		return fmt.Errorf("postgres_ticket_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID returns a ticket owned by the given user.

Description: Ownership is part of the lookup key, so a foreign ticket is
indistinguishable from a missing one.

Parameters:
  - context: context.Context
  - userID: string
  - ticketID: string

Returns:
  - *Ticket: Hydrated entity
  - error: apperr.NotFound or execution failures
*/
func (repository *ticketRepository) FindByID(context context.Context, userID, ticketID string) (*Ticket, error) {
	s := schema.MediaTicket
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2`,
		s.MediaType, s.MediaID, s.TicketImagePath, s.WatchedTime, s.UpdateTime,
		s.Table, s.UserID, s.TicketID,
	)

	ticket := &Ticket{TicketID: ticketID, UserID: userID}
	err := repository.pool.QueryRow(context, query, userID, ticketID).Scan(
		&ticket.MediaType,
		&ticket.MediaID,
		&ticket.TicketImagePath,
		&ticket.WatchedTime,
		&ticket.UpdateTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Ticket")
		}
		return nil, fmt.Errorf("postgres_ticket_repo_find_failed: %w", err)
	}

	return ticket, nil
}

/*
Delete removes a ticket row owned by the given user.

Parameters:
  - context: context.Context
  - userID: string
  - ticketID: string

Returns:
  - bool: true if a row was removed
  - error: Execution failures
*/
func (repository *ticketRepository) Delete(context context.Context, userID, ticketID string) (bool, error) {
	s := schema.MediaTicket
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1 AND %s = $2`,
		s.Table, s.UserID, s.TicketID,
	)

	tag, err := repository.pool.Exec(context, query, userID, ticketID)
	if err != nil {
		return false, fmt.Errorf("postgres_ticket_repo_delete_failed: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

/*
ListByUser returns the user's tickets under the given ordering.

Parameters:
  - context: context.Context
  - userID: string
  - order: Order

Returns:
  - []*Ticket: Ordered slice
  - error: Execution failures
*/
func (repository *ticketRepository) ListByUser(context context.Context, userID string, order Order) ([]*Ticket, error) {
	s := schema.MediaTicket

	sortColumn := s.WatchedTime
	if order == OrderUpdateTime {
		sortColumn = s.UpdateTime
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC`,
		s.TicketID, s.MediaType, s.MediaID, s.TicketImagePath, s.WatchedTime, s.UpdateTime,
		s.Table, s.UserID, sortColumn,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_ticket_repo_list_failed: %w", err)
	}
	defer rows.Close()

	tickets := make([]*Ticket, 0)
	for rows.Next() {
		ticket := &Ticket{UserID: userID}
		err := rows.Scan(
			&ticket.TicketID,
			&ticket.MediaType,
			&ticket.MediaID,
			&ticket.TicketImagePath,
			&ticket.WatchedTime,
			&ticket.UpdateTime,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_ticket_repo_list_failed: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_ticket_repo_list_failed: %w", err)
	}

	return tickets, nil
}
