package schema

// CommentReactionTable represents the 'comment_reactions' table
type CommentReactionTable struct {
	Table     string
	UserID    string
	CommentID string
	IsLike    string
}

// CommentReaction is the schema definition for comment_reactions
var CommentReaction = CommentReactionTable{
	Table:     "comment_reactions",
	UserID:    "user_id",
	CommentID: "comment_id",
	IsLike:    "is_like",
}
