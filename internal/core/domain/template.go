package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/martijn/lexdesk/pkg/civildate"
)

// Variables filled from records rather than typed by the user.
const (
	VarClientName = "nome_cliente"
	VarCaseNumber = "numero_processo"
	VarCaseStatus = "status_processo"
)

// Date variables are rendered as DD/MM/YYYY.
var dateVariables = map[string]bool{
	"data_audiencia":  true,
	"data_vencimento": true,
}

var placeholderRE = regexp.MustCompile(`\[(.*?)\]`)

// MessageTemplate is a client message with [variable] placeholders.
// Default templates have no owner and are shared read-only.
type MessageTemplate struct {
	ID        string    `db:"id"`
	OwnerID   *string   `db:"user_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	IsDefault bool      `db:"is_default"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewMessageTemplate(ownerID string) *MessageTemplate {
	now := time.Now().UTC()
	return &MessageTemplate{
		ID:        uuid.New().String(),
		OwnerID:   &ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// OwnedBy reports whether the user may edit the template.
func (t *MessageTemplate) OwnedBy(userID string) bool {
	return !t.IsDefault && t.OwnerID != nil && *t.OwnerID == userID
}

func (t *MessageTemplate) Validate() error {
	errs := ValidationErrors{}
	requireText(errs, "title", t.Title)
	requireText(errs, "content", t.Content)
	return errs.Err()
}

// Variables returns the distinct placeholder names in order of first use.
func (t *MessageTemplate) Variables() []string {
	seen := map[string]bool{}
	vars := []string{}
	for _, m := range placeholderRE.FindAllStringSubmatch(t.Content, -1) {
		name := m[1]
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		vars = append(vars, name)
	}
	return vars
}

// Render substitutes values into the template in a single pass, so text
// inside a value is never read as a placeholder. It returns the names that
// had no value; their placeholders stay in the text.
func (t *MessageTemplate) Render(values map[string]string) (string, []string) {
	var missing []string
	for _, name := range t.Variables() {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}

	message := placeholderRE.ReplaceAllStringFunc(t.Content, func(placeholder string) string {
		name := placeholder[1 : len(placeholder)-1]
		value := strings.TrimSpace(values[name])
		if value == "" {
			return placeholder
		}
		if dateVariables[name] {
			value = formatDateValue(value)
		}
		return value
	})
	return message, missing
}

func formatDateValue(v string) string {
	d, err := civildate.ParseInput(v)
	if err != nil {
		return v
	}
	return d.Format("02/01/2006")
}
