package user

import "time"

// Field length limits enforced on every mutation.
const (
	MaxNameLen       = 100
	MaxEmailLen      = 320
	MaxDepartmentLen = 200
	MaxTitleLen      = 100
	MaxPhoneLen      = 30
)

// User is a directory record.
// ID is generated server-side and never reused after deletion.
// FirstName, LastName, Email and Department are always non-empty trimmed strings.
// Title and Phone are absent when nil, non-empty trimmed strings otherwise.
// CreatedAt is set once; UpdatedAt is refreshed on every successful mutation.
type User struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Department string
	Title      *string
	Phone      *string
	IsActive   bool
	CreatedAt  time.Time // UTC
	UpdatedAt  time.Time // UTC, always >= CreatedAt
}
