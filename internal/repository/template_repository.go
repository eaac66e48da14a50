package repository

import (
	"database/sql"

	"github.com/agentbook/whatsapp-relay/internal/model"
)

// TemplateRepositoryInterface defines methods used by service
type TemplateRepositoryInterface interface {
	GetByID(id string) (*model.Template, error)
	ListApproved() ([]model.Template, error)
}

// TemplateRepository reads the pre-approved template table. The relay never
// writes templates; they are synced from the provider out of band.
type TemplateRepository struct {
	DB *sql.DB
}

// GetByID fetches a template by name
func (r *TemplateRepository) GetByID(id string) (*model.Template, error) {
	query := `
        SELECT id, display_name, language, category, status, body
        FROM templates
        WHERE id = $1
    `
	row := r.DB.QueryRow(query, id)

	var t model.Template
	if err := row.Scan(&t.ID, &t.DisplayName, &t.Language, &t.Category, &t.Status, &t.Body); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &t, nil
}

// ListApproved fetches the approved template set, ordered by id
func (r *TemplateRepository) ListApproved() ([]model.Template, error) {
	query := `
        SELECT id, display_name, language, category, status, body
        FROM templates
        WHERE status = $1
        ORDER BY id
    `
	rows, err := r.DB.Query(query, model.TemplateStatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []model.Template{}
	for rows.Next() {
		var t model.Template
		if err := rows.Scan(&t.ID, &t.DisplayName, &t.Language, &t.Category, &t.Status, &t.Body); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

var _ TemplateRepositoryInterface = (*TemplateRepository)(nil)
