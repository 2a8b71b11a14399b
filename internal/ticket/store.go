// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package ticket

import "context"

// Repository defines the data access contract for ticket metadata.
type Repository interface {

	/*
		Create persists a new ticket row.

		Parameters:
		  - context: context.Context
		  - ticket: *Ticket

		Returns:
		  - error: Constraint or execution failures
	*/
	Create(context context.Context, ticket *Ticket) error

	/*
		FindByID returns a ticket owned by the given user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - ticketID: string

		Returns:
		  - *Ticket: The hydrated entity
		  - error: apperr.NotFound for missing or foreign tickets
	*/
	FindByID(context context.Context, userID, ticketID string) (*Ticket, error)

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
	Delete(context context.Context, userID, ticketID string) (bool, error)

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
	ListByUser(context context.Context, userID string, order Order) ([]*Ticket, error)
}
