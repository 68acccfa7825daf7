package schemas

import (
	"fmt"
	"sort"
	"sync"

	"github.com/typesense/typesense-go/v3/typesense/api"
)

// SchemaDefinition define o schema de uma collection Typesense
type SchemaDefinition struct {
	Version      string
	Fields       []api.Field
	SortingField string
	// TokenSeparators entram na tokenização além do espaço ("1-a" vira "1" e "a")
	TokenSeparators []string
}

// CollectionSchema monta o schema de criação da collection com o nome informado
func (s *SchemaDefinition) CollectionSchema(name string) *api.CollectionSchema {
	fields := make([]api.Field, len(s.Fields))
	copy(fields, s.Fields)

	schema := &api.CollectionSchema{
		Name:   name,
		Fields: fields,
	}
	if s.SortingField != "" {
		schema.DefaultSortingField = StringPtr(s.SortingField)
	}
	if len(s.TokenSeparators) > 0 {
		separators := make([]string, len(s.TokenSeparators))
		copy(separators, s.TokenSeparators)
		schema.TokenSeparators = &separators
	}
	return schema
}

// Registry mantém o registro de schemas versionados
type Registry struct {
	mu             sync.RWMutex
	schemas        map[string]*SchemaDefinition
	currentVersion string
}

// NewRegistry cria um novo registro de schemas
func NewRegistry() *Registry {
	r := &Registry{
		schemas: make(map[string]*SchemaDefinition),
	}

	r.registerBuiltinSchemas()

	return r
}

// registerBuiltinSchemas registra todos os schemas disponíveis (REGISTRAR AQUI OS NOVOS SCHEMAS)
func (r *Registry) registerBuiltinSchemas() {
	r.Register(SchemaV1())
	r.Register(SchemaV2())
}

// Register registra um novo schema
func (r *Registry) Register(schema *SchemaDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.schemas[schema.Version] = schema

	if r.currentVersion == "" || schema.Version > r.currentVersion {
		r.currentVersion = schema.Version
	}
}

// GetSchema retorna um schema por versão
func (r *Registry) GetSchema(version string) (*SchemaDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, exists := r.schemas[version]
	if !exists {
		return nil, fmt.Errorf("schema versão '%s' não encontrado (disponíveis: %v)", version, r.listVersionsLocked())
	}

	return schema, nil
}

// GetCurrentVersion retorna a versão atual do schema
func (r *Registry) GetCurrentVersion() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.currentVersion
}

// ListVersions retorna todas as versões disponíveis, em ordem
func (r *Registry) ListVersions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listVersionsLocked()
}

func (r *Registry) listVersionsLocked() []string {
	versions := make([]string, 0, len(r.schemas))
	for version := range r.schemas {
		versions = append(versions, version)
	}
	sort.Strings(versions)
	return versions
}

// Helper functions para criação de schemas

// StringPtr retorna um ponteiro para string
func StringPtr(s string) *string {
	return &s
}

// BoolPtr retorna um ponteiro para bool
func BoolPtr(b bool) *bool {
	return &b
}
