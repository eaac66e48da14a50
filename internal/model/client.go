// internal/model/client.go
package model

// Client mirrors the CRM client record, reduced to what the relay needs.
type Client struct {
	ID        string `db:"id" json:"id"`
	Phone     string `db:"phone" json:"phone"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
}
