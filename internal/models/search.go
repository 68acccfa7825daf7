package models

// AddressField identifica o campo usado em uma consulta por texto na base local
type AddressField string

const (
	FieldStreet       AddressField = "logradouro"
	FieldNeighborhood AddressField = "bairro"
)

// AddressFilter filtra a base local por logradouro e/ou bairro (substring, sem diferenciar maiúsculas)
type AddressFilter struct {
	Street       string `form:"logradouro" json:"logradouro,omitempty"`
	Neighborhood string `form:"bairro" json:"bairro,omitempty"`
}

// IsEmpty indica se nenhum campo foi informado
func (f AddressFilter) IsEmpty() bool {
	return f.Street == "" && f.Neighborhood == ""
}

// AddressQuery representa a busca do formulário de endereço.
// Com logradouro, o bairro atua como filtro; só com bairro, a busca é feita no campo bairro.
type AddressQuery struct {
	Street       string
	Neighborhood string
	Cap          int
}

// SearchResponse representa o resultado de uma busca de endereço
type SearchResponse struct {
	Results []RankedResult `json:"results"`
	Count   int            `json:"count"`
	Query   QueryMeta      `json:"query"`
	Timing  TimingMeta     `json:"timing"`
}

// QueryMeta contém metadados sobre a busca processada
type QueryMeta struct {
	Original     string   `json:"original"`
	Normalized   string   `json:"normalized"`
	Variants     []string `json:"variants"`
	ExternalUsed bool     `json:"external_used"`
	Cached       bool     `json:"cached,omitempty"`
}

// TimingMeta contém métricas de tempo
type TimingMeta struct {
	TotalMs   float64 `json:"total_ms"`
	LookupMs  float64 `json:"lookup_ms"`
	RankingMs float64 `json:"ranking_ms,omitempty"`
}

// LookupResponse é o formato de resposta das consultas diretas à base local
type LookupResponse struct {
	Count   int             `json:"count"`
	Results []AddressRecord `json:"results"`
}
