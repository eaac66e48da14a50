// internal/model/template.go
package model

import "regexp"

// Template approval statuses as reported by the provider.
const (
	TemplateStatusApproved = "APPROVED"
	TemplateStatusPending  = "PENDING"
	TemplateStatusRejected = "REJECTED"
)

// Template is a pre-approved outbound message pattern. Rows are read-only
// once approved; the relay never writes to this table.
type Template struct {
	ID          string `db:"id" json:"id"`
	DisplayName string `db:"display_name" json:"display_name"`
	Language    string `db:"language" json:"language"`
	Category    string `db:"category" json:"category"`
	Status      string `db:"status" json:"status"`
	Body        string `db:"body" json:"body"`
}

var placeholderPattern = regexp.MustCompile(`\{\{([a-zA-Z0-9_]+)\}\}`)

// Placeholders returns the placeholder names in the order they appear in the
// template body. Repeated names are returned once, at first occurrence.
func (t *Template) Placeholders() []string {
	seen := map[string]bool{}
	names := []string{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(t.Body, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		names = append(names, m[1])
	}
	return names
}
