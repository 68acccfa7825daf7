package models

import "errors"

var (
	// ErrInvalidInput indica entrada rejeitada antes de qualquer consulta (CEP sem 8 dígitos, termo curto)
	ErrInvalidInput = errors.New("entrada inválida")
	// ErrNotFound indica que os canais responderam, mas nenhum endereço corresponde
	ErrNotFound = errors.New("nenhum endereço encontrado")
	// ErrServiceUnavailable indica que nenhum canal de consulta pôde ser verificado
	ErrServiceUnavailable = errors.New("serviços de consulta indisponíveis")
)
