package schema

// UserAccountTable represents the 'users' table
type UserAccountTable struct {
	Table           string
	UserID          string
	Platform        string
	DisplayName     string
	Email           string
	PasswordHash    string
	SignupTime      string
	LastSigninTime  string
	AttendanceCount string
	Deleted         string
}

// UserAccount is the schema definition for users
var UserAccount = UserAccountTable{
	Table:           "users",
	UserID:          "user_id",
	Platform:        "platform",
	DisplayName:     "display_name",
	Email:           "email",
	PasswordHash:    "password_hash",
	SignupTime:      "signup_time",
	LastSigninTime:  "last_signin_time",
	AttendanceCount: "attendance_count",
	Deleted:         "deleted",
}
