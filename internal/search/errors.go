package search

import "errors"

var (
	// ErrChannelUnavailable marca a falha de um único canal de consulta.
	// É registrada em log e tratada como resultado vazio; não sai do Engine.
	ErrChannelUnavailable = errors.New("canal de consulta indisponível")
	ErrTermTooShort       = errors.New("termo de busca muito curto")
	ErrInvalidCap         = errors.New("limite de resultados deve ser positivo")
	ErrInvalidCode        = errors.New("CEP deve ter 8 dígitos")
)
