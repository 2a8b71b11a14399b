// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

package favorite

import (
	"context"

	"github.com/cinelogapp/cinelog/internal/platform/apperr"
	"github.com/cinelogapp/cinelog/pkg/timeutil"
)

// Service orchestrates the favorites list.
type Service struct {
	repo  Repository
	clock timeutil.Clock
}

// NewService constructs a new [Service].
func NewService(repo Repository, clock timeutil.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

/*
Register marks a media item as a favorite of the caller.

Parameters:
  - context: context.Context
  - userID: string
  - mediaType, mediaID: int

Returns:
  - *Favorite: The persisted mark with its update time
  - error: apperr.Conflict if already marked, storage errors
*/
func (service *Service) Register(context context.Context, userID string, mediaType, mediaID int) (*Favorite, error) {
	favorite := &Favorite{
		UserID:     userID,
		MediaType:  mediaType,
		MediaID:    mediaID,
		UpdateTime: service.clock.Now(),
	}

	if err := service.repo.Create(context, favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}

/*
Unregister removes a favorite mark of the caller.

Parameters:
  - context: context.Context
  - userID: string
  - mediaType, mediaID: int

Returns:
  - error: apperr.NotFound when no mark existed, storage errors
*/
func (service *Service) Unregister(context context.Context, userID string, mediaType, mediaID int) error {
	removed, err := service.repo.Delete(context, userID, mediaType, mediaID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("Favorite")
	}
	return nil
}

/*
List returns the caller's favorites, most recently marked first.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Favorite: Ordered slice
  - error: Storage errors
*/
func (service *Service) List(context context.Context, userID string) ([]*Favorite, error) {
	return service.repo.ListByUser(context, userID)
}
