package domain

import (
	"testing"
	"time"

	"github.com/martijn/lexdesk/pkg/civildate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestClientValidate(t *testing.T) {
	tests := []struct {
		name   string
		client Client
		fields []string
	}{
		{
			name:   "valid minimal",
			client: Client{Name: "Ana Costa", Email: "ana@x.com", Status: ClientActive},
		},
		{
			name:   "short name and bad email",
			client: Client{Name: "An", Email: "ana", Status: ClientActive},
			fields: []string{"nome", "email"},
		},
		{
			name:   "short optional fields",
			client: Client{Name: "Ana Costa", Email: "ana@x.com", Phone: ptr("1199"), Address: ptr("Rua"), Status: ClientActive},
			fields: []string{"telefone", "endereco"},
		},
		{
			name:   "unknown status",
			client: Client{Name: "Ana Costa", Email: "ana@x.com", Status: "Suspenso"},
			fields: []string{"status"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.client.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			verrs, ok := AsValidation(err)
			require.True(t, ok, "expected ValidationErrors, got %v", err)
			assert.Len(t, verrs, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, verrs, f)
			}
		})
	}
}

func TestClientNormalizeDropsBlankOptionals(t *testing.T) {
	c := Client{Name: "  Ana Costa ", Email: "ana@x.com", Phone: ptr("   ")}
	c.Normalize()

	assert.Equal(t, "Ana Costa", c.Name)
	assert.Nil(t, c.Phone)
	assert.Equal(t, ClientActive, c.Status)
	assert.NoError(t, c.Validate())
}

func TestCaseValidate(t *testing.T) {
	start := civildate.Date{Year: 2025, Month: time.March, Day: 10}
	c := Case{Number: "0001", Subject: "Trabalhista", ClientID: "c1", Status: CaseInProgress, Priority: PriorityHigh, StartDate: start}
	assert.NoError(t, c.Validate())

	before := start.AddDays(-1)
	c.Deadline = &before
	c.ClaimValue = ptr(-1.0)
	verrs, ok := AsValidation(c.Validate())
	require.True(t, ok)
	assert.Contains(t, verrs, "data_limite")
	assert.Contains(t, verrs, "valor_causa")
}

func TestHearingValidateHour(t *testing.T) {
	h := Hearing{CaseNumber: "0001", Location: "Fórum", Date: civildate.Date{Year: 2025, Month: 1, Day: 2}, Type: HearingSingle, Status: HearingScheduled}

	for _, hour := range []string{"00:00", "09:30", "23:59"} {
		h.Time = hour
		assert.NoError(t, h.Validate(), hour)
	}
	for _, hour := range []string{"24:00", "9:30", "12:60", ""} {
		h.Time = hour
		assert.Error(t, h.Validate(), hour)
	}

	h.Time = "14:00:00"
	h.Normalize()
	assert.Equal(t, "14:00", h.Time)
}

func TestEntryDisplayStatus(t *testing.T) {
	today := civildate.Date{Year: 2025, Month: time.June, Day: 20}

	tests := []struct {
		name   string
		status EntryStatus
		due    civildate.Date
		want   EntryStatus
	}{
		{"pending past due", EntryPending, today.AddDays(-1), EntryOverdue},
		{"pending due today", EntryPending, today, EntryPending},
		{"pending future", EntryPending, today.AddDays(3), EntryPending},
		{"paid past due", EntryPaid, today.AddDays(-10), EntryPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Entry{Status: tt.status, DueDate: tt.due}
			assert.Equal(t, tt.want, e.DisplayStatus(today))
			assert.Equal(t, tt.status, e.Status)
		})
	}
}

func TestEntrySetStatus(t *testing.T) {
	paidOn := civildate.Date{Year: 2025, Month: time.June, Day: 21}
	e := Entry{Status: EntryPending}

	e.SetStatus(EntryPaid, paidOn)
	require.NotNil(t, e.PaidOn)
	assert.Equal(t, paidOn, *e.PaidOn)

	e.SetStatus(EntryPending, paidOn)
	assert.Nil(t, e.PaidOn)
}

func TestEntryValidate(t *testing.T) {
	e := Entry{Description: "Ho", Amount: 0, ClientID: "", Status: "Atrasado"}
	verrs, ok := AsValidation(e.Validate())
	require.True(t, ok)
	for _, f := range []string{"descricao", "valor", "data_vencimento", "cliente_id", "status"} {
		assert.Contains(t, verrs, f)
	}
}

func TestTemplateVariablesAndRender(t *testing.T) {
	tpl := MessageTemplate{Content: "Olá [nome_cliente], sua audiência do processo [numero_processo] é em [data_audiencia]. Até [nome_cliente]!"}

	assert.Equal(t, []string{"nome_cliente", "numero_processo", "data_audiencia"}, tpl.Variables())

	msg, missing := tpl.Render(map[string]string{
		"nome_cliente":   "Ana",
		"data_audiencia": "2025-07-01",
	})
	assert.Equal(t, []string{"numero_processo"}, missing)
	assert.Equal(t, "Olá Ana, sua audiência do processo [numero_processo] é em 01/07/2025. Até Ana!", msg)
}

func TestTemplateRenderIsSinglePass(t *testing.T) {
	tpl := MessageTemplate{Content: "Prezado(a) [nome_cliente], processo [numero_processo]."}

	msg, missing := tpl.Render(map[string]string{
		"nome_cliente":    "Ana [numero_processo] Costa",
		"numero_processo": "0001234-56.2024.8.26.0100",
	})
	assert.Empty(t, missing)
	assert.Equal(t, "Prezado(a) Ana [numero_processo] Costa, processo 0001234-56.2024.8.26.0100.", msg)
}

func TestTemplateOwnership(t *testing.T) {
	def := MessageTemplate{IsDefault: true}
	assert.False(t, def.OwnedBy("u1"))

	own := NewMessageTemplate("u1")
	assert.True(t, own.OwnedBy("u1"))
	assert.False(t, own.OwnedBy("u2"))
}

func TestTribunalRegistry(t *testing.T) {
	all := Tribunals()
	assert.Len(t, all, 21)

	tjsp, ok := FindTribunal("tjsp")
	require.True(t, ok)
	assert.Equal(t, CategoryState, tjsp.Category)
	assert.Equal(t, "https://api-publica.datajud.cnj.jus.br/api_publica_tjsp/_search", tjsp.URL)

	_, ok = FindTribunal("tjxx")
	assert.False(t, ok)
}

func TestFormatProcessNumber(t *testing.T) {
	assert.Equal(t, "0000832-35.2018.4.01.3202", FormatProcessNumber("00008323520184013202"))
	assert.Equal(t, "0000832-35.2018.4.01.3202", FormatProcessNumber("0000832-35.2018.4.01.3202"))
	assert.Equal(t, "12345", FormatProcessNumber("12345"))
}

func TestValidateCredentials(t *testing.T) {
	assert.NoError(t, ValidateCredentials("ana@x.com", "longenough"))

	verrs, ok := AsValidation(ValidateCredentials("nope", "short"))
	require.True(t, ok)
	assert.Contains(t, verrs, "email")
	assert.Contains(t, verrs, "password")
}
