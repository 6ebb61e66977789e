package models

// Client is a customer a job is produced for. Jobs reference clients by
// Name (the sheet keeps human-readable rows).
type Client struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate checks structural validity on creation or edit.
func (c Client) Validate() error {
	if c.ID == "" {
		return fieldError("client id is required")
	}
	if c.Name == "" {
		return fieldError("client name is required")
	}
	return nil
}
