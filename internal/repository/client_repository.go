package repository

import (
	"database/sql"

	"github.com/agentbook/whatsapp-relay/internal/model"
)

// ClientRepositoryInterface defines methods used by service
type ClientRepositoryInterface interface {
	GetByID(id string) (*model.Client, error)
	ListAll() ([]model.Client, error)
}

// ClientRepository is the concrete implementation
type ClientRepository struct {
	DB *sql.DB
}

// GetByID fetches a client by its CRM identifier
func (r *ClientRepository) GetByID(id string) (*model.Client, error) {
	query := `
        SELECT id, phone, first_name, last_name
        FROM clients
        WHERE id = $1
    `
	row := r.DB.QueryRow(query, id)

	var c model.Client
	if err := row.Scan(&c.ID, &c.Phone, &c.FirstName, &c.LastName); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &c, nil
}

// ListAll fetches all clients
func (r *ClientRepository) ListAll() ([]model.Client, error) {
	query := `
        SELECT id, phone, first_name, last_name
        FROM clients
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []model.Client{}
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Phone, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, nil
}

var _ ClientRepositoryInterface = (*ClientRepository)(nil)
