package dto

import "encoding/json"

// TribunalResponse is one searchable court
type TribunalResponse struct {
	Alias     string `json:"alias"`
	Nome      string `json:"nome"`
	Categoria string `json:"categoria"`
	URL       string `json:"url"`
}

// CourtLookupRequest asks for one process
type CourtLookupRequest struct {
	Tribunal       string `json:"tribunal" binding:"required"`
	NumeroProcesso string `json:"numero_processo" binding:"required"`
}

// CourtLookupResponse carries the remote record untouched in Dados
type CourtLookupResponse struct {
	Tribunal        TribunalResponse `json:"tribunal"`
	NumeroProcesso  string           `json:"numero_processo"`
	NumeroFormatado string           `json:"numero_formatado"`
	Dados           json.RawMessage  `json:"dados"`
}
