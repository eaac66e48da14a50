// internal/service/template_service.go
package service

import (
	appErrors "github.com/agentbook/whatsapp-relay/internal/errors"
	"github.com/agentbook/whatsapp-relay/internal/model"
)

// BindVariables resolves template placeholders against the supplied variables
// by name, returning the parameter values in placeholder order. Every
// placeholder must have a matching key; extra keys are ignored. Binding is
// validated before any provider call.
func BindVariables(t *model.Template, variables map[string]string) ([]string, error) {
	placeholders := t.Placeholders()
	params := make([]string, 0, len(placeholders))
	for _, name := range placeholders {
		value, ok := variables[name]
		if !ok {
			return nil, appErrors.NewValidation("missing variable %q for template %q", name, t.ID)
		}
		params = append(params, value)
	}
	return params, nil
}
