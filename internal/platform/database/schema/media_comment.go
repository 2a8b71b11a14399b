package schema

// MediaCommentTable represents the 'media_comments' table
type MediaCommentTable struct {
	Table           string
	CommentID       string
	MediaType       string
	MediaID         string
	UserID          string
	Grade           string
	CommentText     string
	CommentType     string
	CommentLevel    string
	OriginCommentID string
	RegisterTime    string
	ModifyTime      string
	Likes           string
	Dislikes        string
	ReplyCount      string
	ReportCount     string
	Deleted         string
}

// MediaComment is the schema definition for media_comments
var MediaComment = MediaCommentTable{
	Table:           "media_comments",
	CommentID:       "comment_id",
	MediaType:       "media_type",
	MediaID:         "media_id",
	UserID:          "user_id",
	Grade:           "grade",
	CommentText:     "comment_text",
	CommentType:     "comment_type",
	CommentLevel:    "comment_level",
	OriginCommentID: "origin_comment_id",
	RegisterTime:    "register_time",
	ModifyTime:      "modify_time",
	Likes:           "likes",
	Dislikes:        "dislikes",
	ReplyCount:      "reply_count",
	ReportCount:     "report_count",
	Deleted:         "deleted",
}
