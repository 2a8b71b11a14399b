package schema

// OCRUsageTable represents the 'ocr_usage' table
type OCRUsageTable struct {
	Table     string
	YearMonth string
	Consumed  string
}

// OCRUsage is the schema definition for ocr_usage
var OCRUsage = OCRUsageTable{
	Table:     "ocr_usage",
	YearMonth: "year_month",
	Consumed:  "consumed",
}
