package typesense

import (
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v3/typesense"

	"github.com/prefeitura-guaira/app-busca-cep/internal/config"
)

// connectionTimeout vale para cada requisição ao servidor
const connectionTimeout = 5 * time.Second

// NewClient cria o cliente do Typesense a partir da configuração
func NewClient(cfg *config.Config) *typesense.Client {
	return typesense.NewClient(
		typesense.WithServer(ServerURL(cfg)),
		typesense.WithAPIKey(cfg.TypesenseAPIKey),
		typesense.WithConnectionTimeout(connectionTimeout),
	)
}

// ServerURL monta a URL do servidor (ex: http://localhost:8108)
func ServerURL(cfg *config.Config) string {
	return fmt.Sprintf("%s://%s:%s", cfg.TypesenseProtocol, cfg.TypesenseHost, cfg.TypesensePort)
}
