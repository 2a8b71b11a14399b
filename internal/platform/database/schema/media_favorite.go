package schema

// MediaFavoriteTable represents the 'media_favorites' table
type MediaFavoriteTable struct {
	Table      string
	UserID     string
	MediaType  string
	MediaID    string
	UpdateTime string
}

// MediaFavorite is the schema definition for media_favorites
var MediaFavorite = MediaFavoriteTable{
	Table:      "media_favorites",
	UserID:     "user_id",
	MediaType:  "media_type",
	MediaID:    "media_id",
	UpdateTime: "update_time",
}
