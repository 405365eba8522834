package domain

import (
	"time"

	"github.com/google/uuid"
)

// APIClient is an integration credential that acts on behalf of its owner
// through the client_credentials grant.
type APIClient struct {
	ID        string    `db:"id"`
	Secret    string    `db:"secret"` // bcrypt hashed
	Label     string    `db:"label"`
	OwnerID   string    `db:"user_id"`
	Scopes    []string  `db:"-"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewAPIClient(label, ownerID, hashedSecret string, scopes []string) *APIClient {
	now := time.Now().UTC()
	return &APIClient{
		ID:        uuid.New().String(),
		Secret:    hashedSecret,
		Label:     label,
		OwnerID:   ownerID,
		Scopes:    scopes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ResourceScopes are the scopes an integration client may hold, one per
// route group. "*" grants all of them.
var ResourceScopes = []string{
	"clientes",
	"processos",
	"audiencias",
	"tarefas",
	"documentos",
	"financeiro",
	"relatorios",
	"agenda",
	"dashboard",
	"equipe",
	"mensagens",
	"consulta-processos",
}

// ValidateScopes rejects empty or unknown scopes.
func ValidateScopes(scopes []string) error {
	errs := ValidationErrors{}
	if len(scopes) == 0 {
		errs.Add("scopes", "at least one scope is required")
	}
	for _, scope := range scopes {
		if scope == "*" {
			continue
		}
		known := false
		for _, r := range ResourceScopes {
			if r == scope {
				known = true
				break
			}
		}
		if !known {
			errs.Add("scopes", "unknown scope: "+scope)
		}
	}
	return errs.Err()
}
