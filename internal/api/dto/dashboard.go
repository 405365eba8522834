package dto

// DashboardResponse is the office overview
type DashboardResponse struct {
	TotalClientes      int               `json:"total_clientes"`
	TotalProcessos     int               `json:"total_processos"`
	AudienciasHoje     int               `json:"audiencias_hoje"`
	ReceitaMes         float64           `json:"receita_mes"`
	ReceitaTotal       float64           `json:"receita_total"`
	PendenteTotal      float64           `json:"pendente_total"`
	ProcessosRecentes  []CaseResponse    `json:"processos_recentes"`
	ProximasAudiencias []HearingResponse `json:"proximas_audiencias"`
	Produtividade      ProductivityStats `json:"produtividade"`
	Mes                MonthStats        `json:"mes"`
}

// ProductivityStats are whole percentages
type ProductivityStats struct {
	ProcessosConcluidos  int `json:"processos_concluidos"`
	AudienciasRealizadas int `json:"audiencias_realizadas"`
	TarefasConcluidas    int `json:"tarefas_concluidas"`
}

// MonthStats counts this month's case activity
type MonthStats struct {
	Ganhos      int `json:"ganhos"`
	EmAndamento int `json:"em_andamento"`
	Novos       int `json:"novos"`
}
