// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

// Package favorite manages each user's favorite movie and series list.
package favorite

import "time"

// Favorite marks one media item as favorited by one user.
type Favorite struct {
	UserID     string    `json:"user_id"`
	MediaType  int       `json:"media_type"`
	MediaID    int       `json:"media_id"`
	UpdateTime time.Time `json:"-"`
}
