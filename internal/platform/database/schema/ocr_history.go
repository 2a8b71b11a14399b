package schema

// OCRHistoryTable represents the 'ocr_history' table
type OCRHistoryTable struct {
	Table     string
	UserID    string
	UsedAt    string
	Succeeded string
	OCRUID    string
}

// OCRHistory is the schema definition for ocr_history
var OCRHistory = OCRHistoryTable{
	Table:     "ocr_history",
	UserID:    "user_id",
	UsedAt:    "used_at",
	Succeeded: "succeeded",
	OCRUID:    "ocr_uid",
}
