package domain

import (
	"fmt"
	"sort"
)

const (
	CategorySuperior = "Tribunais Superiores"
	CategoryFederal  = "Justiça Federal"
	CategoryState    = "Justiça Estadual"
)

const datajudURL = "https://api-publica.datajud.cnj.jus.br/api_publica_%s/_search"

// Tribunal is a court searchable through the lookup webhook.
type Tribunal struct {
	Alias    string
	Name     string
	Category string
	URL      string
}

func tribunal(alias, name, category string) Tribunal {
	return Tribunal{
		Alias:    alias,
		Name:     name,
		Category: category,
		URL:      fmt.Sprintf(datajudURL, alias),
	}
}

var tribunals = []Tribunal{
	tribunal("tst", "Tribunal Superior do Trabalho", CategorySuperior),
	tribunal("tse", "Tribunal Superior Eleitoral", CategorySuperior),
	tribunal("stj", "Superior Tribunal de Justiça", CategorySuperior),
	tribunal("stm", "Superior Tribunal Militar", CategorySuperior),

	tribunal("trf1", "Tribunal Regional Federal da 1ª Região", CategoryFederal),
	tribunal("trf2", "Tribunal Regional Federal da 2ª Região", CategoryFederal),
	tribunal("trf3", "Tribunal Regional Federal da 3ª Região", CategoryFederal),
	tribunal("trf4", "Tribunal Regional Federal da 4ª Região", CategoryFederal),
	tribunal("trf5", "Tribunal Regional Federal da 5ª Região", CategoryFederal),
	tribunal("trf6", "Tribunal Regional Federal da 6ª Região", CategoryFederal),

	tribunal("tjsp", "Tribunal de Justiça de São Paulo", CategoryState),
	tribunal("tjrj", "Tribunal de Justiça do Rio de Janeiro", CategoryState),
	tribunal("tjmg", "Tribunal de Justiça de Minas Gerais", CategoryState),
	tribunal("tjdft", "Tribunal de Justiça do Distrito Federal e Territórios", CategoryState),
	tribunal("tjrs", "Tribunal de Justiça do Rio Grande do Sul", CategoryState),
	tribunal("tjpr", "Tribunal de Justiça do Paraná", CategoryState),
	tribunal("tjsc", "Tribunal de Justiça de Santa Catarina", CategoryState),
	tribunal("tjba", "Tribunal de Justiça da Bahia", CategoryState),
	tribunal("tjce", "Tribunal de Justiça do Ceará", CategoryState),
	tribunal("tjgo", "Tribunal de Justiça de Goiás", CategoryState),
	tribunal("tjpe", "Tribunal de Justiça de Pernambuco", CategoryState),
}

var tribunalsByAlias = func() map[string]Tribunal {
	m := make(map[string]Tribunal, len(tribunals))
	for _, t := range tribunals {
		m[t.Alias] = t
	}
	return m
}()

// Tribunals returns the registry in display order.
func Tribunals() []Tribunal {
	out := make([]Tribunal, len(tribunals))
	copy(out, tribunals)
	return out
}

// TribunalCategories returns the categories in display order.
func TribunalCategories() []string {
	return []string{CategorySuperior, CategoryFederal, CategoryState}
}

// FindTribunal looks up a tribunal by alias.
func FindTribunal(alias string) (Tribunal, bool) {
	t, ok := tribunalsByAlias[alias]
	return t, ok
}

// TribunalAliases returns all aliases sorted.
func TribunalAliases() []string {
	out := make([]string, 0, len(tribunals))
	for _, t := range tribunals {
		out = append(out, t.Alias)
	}
	sort.Strings(out)
	return out
}

// FormatProcessNumber renders a 20 digit unified process number as
// NNNNNNN-DD.AAAA.J.TR.OOOO. Other input is returned unchanged.
func FormatProcessNumber(numero string) string {
	d := Digits(numero)
	if len(d) != 20 || len(d) != len(numero) {
		return numero
	}
	return fmt.Sprintf("%s-%s.%s.%s.%s.%s", d[0:7], d[7:9], d[9:13], d[13:14], d[14:16], d[16:20])
}
