// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package favorite

import "context"

// Repository defines the data access contract for the favorites list.
type Repository interface {

	/*
		Create persists a new favorite mark.

		Parameters:
		  - context: context.Context
		  - favorite: *Favorite

		Returns:
		  - error: apperr.Conflict on a duplicate mark, execution failures
	*/
	Create(context context.Context, favorite *Favorite) error

	/*
		Delete removes a favorite mark.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - mediaType, mediaID: int

		Returns:
		  - bool: true if a row was actually removed
		  - error: Execution failures
	*/
	Delete(context context.Context, userID string, mediaType, mediaID int) (bool, error)

	/*
		ListByUser returns the user's favorites, most recently marked first.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []*Favorite: Ordered slice
		  - error: Execution failures
	*/
	ListByUser(context context.Context, userID string) ([]*Favorite, error)
}
