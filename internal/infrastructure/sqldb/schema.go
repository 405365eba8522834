package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/martijn/lexdesk/internal/core/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	full_name TEXT,
	password TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'member',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS api_client (
	id TEXT PRIMARY KEY,
	secret TEXT NOT NULL,
	label TEXT NOT NULL,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	scopes TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS auth_code (
	code TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	scopes TEXT NOT NULL,
	expires_at DATETIME NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS clientes (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	nome TEXT NOT NULL,
	email TEXT NOT NULL,
	telefone TEXT,
	endereco TEXT,
	status TEXT NOT NULL,
	processos_ativos INTEGER NOT NULL DEFAULT 0,
	data_registro TEXT NOT NULL,
	ultimo_contato TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_clientes_user ON clientes(user_id);

CREATE TABLE IF NOT EXISTS processos (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	numero TEXT NOT NULL,
	cliente_id TEXT NOT NULL REFERENCES clientes(id) ON DELETE CASCADE,
	assunto TEXT NOT NULL,
	status TEXT NOT NULL,
	prioridade TEXT NOT NULL,
	data_inicio TEXT NOT NULL,
	data_limite TEXT,
	responsavel TEXT,
	instancia TEXT,
	valor_causa REAL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	UNIQUE (user_id, numero)
);
CREATE INDEX IF NOT EXISTS idx_processos_cliente ON processos(cliente_id);

CREATE TABLE IF NOT EXISTS audiencias (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	processo_id TEXT REFERENCES processos(id) ON DELETE SET NULL,
	processo_numero TEXT NOT NULL,
	data TEXT NOT NULL,
	hora TEXT NOT NULL,
	local TEXT NOT NULL,
	tipo TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audiencias_data ON audiencias(user_id, data);

CREATE TABLE IF NOT EXISTS tarefas (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	descricao TEXT NOT NULL,
	responsavel TEXT NOT NULL,
	data_conclusao TEXT NOT NULL,
	prioridade TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tarefas_data ON tarefas(user_id, data_conclusao);

CREATE TABLE IF NOT EXISTS documentos (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	cliente_id TEXT REFERENCES clientes(id) ON DELETE SET NULL,
	processo_id TEXT REFERENCES processos(id) ON DELETE SET NULL,
	nome TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	tamanho INTEGER,
	tipo_mime TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS financeiro_lancamentos (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	cliente_id TEXT NOT NULL REFERENCES clientes(id) ON DELETE CASCADE,
	descricao TEXT NOT NULL,
	valor REAL NOT NULL,
	data_vencimento TEXT NOT NULL,
	data_pagamento TEXT,
	status TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_financeiro_venc ON financeiro_lancamentos(user_id, data_vencimento);

CREATE TABLE IF NOT EXISTS equipe (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	nome TEXT NOT NULL,
	email TEXT NOT NULL,
	telefone TEXT,
	cargo TEXT NOT NULL,
	departamento TEXT NOT NULL,
	data_admissao TEXT,
	salario REAL,
	status TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS message_templates (
	id TEXT PRIMARY KEY,
	user_id TEXT REFERENCES profiles(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	is_default INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

// postgresSchema statements are separated by ";\n" and run one by one.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	full_name TEXT,
	password TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'member',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS api_client (
	id TEXT PRIMARY KEY,
	secret TEXT NOT NULL,
	label TEXT NOT NULL,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	scopes TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS auth_code (
	code TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	scopes TEXT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS clientes (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	nome TEXT NOT NULL,
	email TEXT NOT NULL,
	telefone TEXT,
	endereco TEXT,
	status TEXT NOT NULL,
	processos_ativos INTEGER NOT NULL DEFAULT 0,
	data_registro DATE NOT NULL,
	ultimo_contato DATE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_clientes_user ON clientes(user_id);
CREATE TABLE IF NOT EXISTS processos (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	numero TEXT NOT NULL,
	cliente_id TEXT NOT NULL REFERENCES clientes(id) ON DELETE CASCADE,
	assunto TEXT NOT NULL,
	status TEXT NOT NULL,
	prioridade TEXT NOT NULL,
	data_inicio DATE NOT NULL,
	data_limite DATE,
	responsavel TEXT,
	instancia TEXT,
	valor_causa NUMERIC(14,2),
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	UNIQUE (user_id, numero)
);
CREATE INDEX IF NOT EXISTS idx_processos_cliente ON processos(cliente_id);
CREATE TABLE IF NOT EXISTS audiencias (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	processo_id TEXT REFERENCES processos(id) ON DELETE SET NULL,
	processo_numero TEXT NOT NULL,
	data DATE NOT NULL,
	hora TEXT NOT NULL,
	local TEXT NOT NULL,
	tipo TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audiencias_data ON audiencias(user_id, data);
CREATE TABLE IF NOT EXISTS tarefas (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	descricao TEXT NOT NULL,
	responsavel TEXT NOT NULL,
	data_conclusao DATE NOT NULL,
	prioridade TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tarefas_data ON tarefas(user_id, data_conclusao);
CREATE TABLE IF NOT EXISTS documentos (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	cliente_id TEXT REFERENCES clientes(id) ON DELETE SET NULL,
	processo_id TEXT REFERENCES processos(id) ON DELETE SET NULL,
	nome TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	tamanho BIGINT,
	tipo_mime TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS financeiro_lancamentos (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	cliente_id TEXT NOT NULL REFERENCES clientes(id) ON DELETE CASCADE,
	descricao TEXT NOT NULL,
	valor NUMERIC(14,2) NOT NULL,
	data_vencimento DATE NOT NULL,
	data_pagamento DATE,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_financeiro_venc ON financeiro_lancamentos(user_id, data_vencimento);
CREATE TABLE IF NOT EXISTS equipe (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	nome TEXT NOT NULL,
	email TEXT NOT NULL,
	telefone TEXT,
	cargo TEXT NOT NULL,
	departamento TEXT NOT NULL,
	data_admissao DATE,
	salario NUMERIC(14,2),
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS message_templates (
	id TEXT PRIMARY KEY,
	user_id TEXT REFERENCES profiles(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	is_default BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)
`

// defaultTemplates are shared by every user and cannot be edited.
var defaultTemplates = []domain.MessageTemplate{
	{
		ID:    "default-lembrete-audiencia",
		Title: "Lembrete de audiência",
		Content: "Olá [nome_cliente], lembramos que a audiência do processo [numero_processo] " +
			"está marcada para [data_audiencia]. Qualquer dúvida, estamos à disposição.",
	},
	{
		ID:    "default-atualizacao-processo",
		Title: "Atualização de processo",
		Content: "Olá [nome_cliente], o processo [numero_processo] foi atualizado. " +
			"Status atual: [status_processo].",
	},
	{
		ID:    "default-cobranca-honorarios",
		Title: "Cobrança de honorários",
		Content: "Olá [nome_cliente], informamos que os honorários referentes ao processo " +
			"[numero_processo] vencem em [data_vencimento].",
	},
}

func (db *DB) seedDefaults(ctx context.Context) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO message_templates (id, user_id, title, content, is_default, created_at, updated_at)
		VALUES (?, NULL, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`
	for _, t := range defaultTemplates {
		if _, err := db.exec(ctx, query, t.ID, t.Title, t.Content, true, now, now); err != nil {
			return fmt.Errorf("failed to seed default template %s: %w", t.ID, err)
		}
	}
	return nil
}
