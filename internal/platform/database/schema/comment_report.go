package schema

// CommentReportTable represents the 'comment_reports' table
type CommentReportTable struct {
	Table      string
	UserID     string
	CommentID  string
	ReportType string
}

// CommentReport is the schema definition for comment_reports
var CommentReport = CommentReportTable{
	Table:      "comment_reports",
	UserID:     "user_id",
	CommentID:  "comment_id",
	ReportType: "report_type",
}
