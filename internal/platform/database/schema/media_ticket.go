package schema

// MediaTicketTable represents the 'media_tickets' table
type MediaTicketTable struct {
	Table           string
	TicketID        string
	MediaType       string
	MediaID         string
	UserID          string
	TicketImagePath string
	WatchedTime     string
	UpdateTime      string
}

// MediaTicket is the schema definition for media_tickets
var MediaTicket = MediaTicketTable{
	Table:           "media_tickets",
	TicketID:        "ticket_id",
	MediaType:       "media_type",
	MediaID:         "media_id",
	UserID:          "user_id",
	TicketImagePath: "ticket_image_path",
	WatchedTime:     "watched_time",
	UpdateTime:      "update_time",
}
