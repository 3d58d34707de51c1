package entity

import "time"

// Message template kinds.
const (
	TemplateSMS   = "sms"
	TemplateEmail = "email"
)

// MessageTemplate is a canned customer message the front office fills in and
// sends by hand (estimate follow-ups, "crew on the way", payment reminders).
type MessageTemplate struct {
	ID        string
	CompanyID string
	Kind      string
	Name      string
	Subject   string // empty for SMS
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
