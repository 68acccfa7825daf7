package models

// Source indica de qual canal um endereço foi obtido
type Source string

const (
	SourceLocal    Source = "local"
	SourceExternal Source = "external"
)

// AddressRecord representa um endereço associado a um CEP.
// O CEP é sempre armazenado com 8 dígitos, sem hífen; a formatação
// NNNNN-NNN acontece apenas na apresentação.
type AddressRecord struct {
	PostalCode   string `json:"cep" example:"14790000"`
	Street       string `json:"logradouro" example:"Avenida Gabriel Garcia Leal"`
	Neighborhood string `json:"bairro" example:"Maracá"`
	Locality     string `json:"localidade" example:"Guaíra"`
	Region       string `json:"uf" example:"SP"`
	Complement   string `json:"complemento,omitempty"`
	Source       Source `json:"origem" example:"local"`
}

// RankedResult é um endereço acompanhado da similaridade (0-1) com a busca
type RankedResult struct {
	AddressRecord
	Score float64 `json:"score" example:"0.84"`
}
