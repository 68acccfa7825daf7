package adapter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prefeitura-guaira/app-busca-cep/internal/models"
	"github.com/prefeitura-guaira/app-busca-cep/internal/search/query"
	"github.com/prefeitura-guaira/app-busca-cep/internal/utils"
	"go.uber.org/zap"
)

// CodeLookupLimit limita quantos registros uma consulta por CEP devolve.
// Cidades pequenas usam um único CEP para vários logradouros.
const CodeLookupLimit = 20

// Colunas de busca guardam logradouro e bairro normalizados (sem acento, minúsculos)
const (
	columnStreetSearch       = "logradouro_busca"
	columnNeighborhoodSearch = "bairro_busca"
)

var recordColumns = []string{"cep", "logradouro", "bairro", "localidade", "uf", "complemento"}

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

// PostgresLookup é a base local de CEPs no Postgres
type PostgresLookup struct {
	pool   *pgxpool.Pool
	table  string
	logger *zap.Logger
}

// NewPostgresLookup conecta ao banco e valida a conexão
func NewPostgresLookup(ctx context.Context, databaseURL, table string, logger *zap.Logger) (*PostgresLookup, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("nome de tabela inválido: %q", table)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar pool do Postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("erro ao conectar no Postgres: %w", err)
	}

	logger.Info("Conectado ao Postgres", zap.String("table", table))
	return &PostgresLookup{
		pool:   pool,
		table:  pgx.Identifier{table}.Sanitize(),
		logger: logger,
	}, nil
}

// Close encerra o pool de conexões
func (p *PostgresLookup) Close() {
	p.pool.Close()
}

// Ping verifica a conexão com o banco
func (p *PostgresLookup) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// QueryByField busca registros cujo campo normalizado contém o padrão normalizado
func (p *PostgresLookup) QueryByField(ctx context.Context, field models.AddressField, pattern string, limit int) ([]models.AddressRecord, error) {
	column, err := searchColumn(field)
	if err != nil {
		return nil, err
	}
	pattern = query.Normalize(pattern)
	if pattern == "" {
		return nil, nil
	}

	sql := buildSelect(p.table, []string{column + ` LIKE $1 ESCAPE '\'`}, "$2")
	return p.queryRecords(ctx, sql, containsPattern(pattern), limit)
}

// QueryByCode busca registros com o CEP exato (8 dígitos)
func (p *PostgresLookup) QueryByCode(ctx context.Context, code string) ([]models.AddressRecord, error) {
	code = utils.DigitsOnly(code)
	if !utils.IsValidCEP(code) {
		return nil, fmt.Errorf("%w: CEP deve ter 8 dígitos", models.ErrInvalidInput)
	}

	sql := buildSelect(p.table, []string{"cep = $1"}, "$2")
	return p.queryRecords(ctx, sql, code, CodeLookupLimit)
}

// QueryByFilter combina logradouro e bairro (ambos opcionais, ao menos um obrigatório)
func (p *PostgresLookup) QueryByFilter(ctx context.Context, filter models.AddressFilter, limit int) ([]models.AddressRecord, error) {
	sql, args, err := buildFilterQuery(p.table, filter, limit)
	if err != nil {
		return nil, err
	}
	return p.queryRecords(ctx, sql, args...)
}

func (p *PostgresLookup) queryRecords(ctx context.Context, sql string, args ...any) ([]models.AddressRecord, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		p.logger.Error("erro na consulta ao Postgres", zap.Error(err))
		return nil, fmt.Errorf("erro na consulta ao Postgres: %w", err)
	}
	defer rows.Close()

	var records []models.AddressRecord
	for rows.Next() {
		var rec models.AddressRecord
		var complement *string
		if err := rows.Scan(&rec.PostalCode, &rec.Street, &rec.Neighborhood, &rec.Locality, &rec.Region, &complement); err != nil {
			return nil, fmt.Errorf("erro ao ler registro: %w", err)
		}
		if complement != nil {
			rec.Complement = *complement
		}
		rec.PostalCode = strings.TrimSpace(rec.PostalCode)
		rec.Source = models.SourceLocal
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar registros: %w", err)
	}
	return records, nil
}

// EnsureSchema cria a tabela e os índices usados pelas buscas
func (p *PostgresLookup) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements(p.table) {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao criar schema: %w", err)
		}
	}
	return nil
}

// CopyRecords insere registros em lote via COPY, preenchendo as colunas de busca
func (p *PostgresLookup) CopyRecords(ctx context.Context, records []models.AddressRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	columns := append(append([]string{}, recordColumns...), columnStreetSearch, columnNeighborhoodSearch)
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{
			r.PostalCode, r.Street, r.Neighborhood, r.Locality, r.Region, r.Complement,
			query.Normalize(r.Street), query.Normalize(r.Neighborhood),
		})
	}

	table := strings.Trim(p.table, `"`)
	n, err := p.pool.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("erro ao inserir registros: %w", err)
	}
	p.logger.Debug("registros copiados", zap.Int64("count", n))
	return n, nil
}

func searchColumn(field models.AddressField) (string, error) {
	switch field {
	case models.FieldStreet:
		return columnStreetSearch, nil
	case models.FieldNeighborhood:
		return columnNeighborhoodSearch, nil
	default:
		return "", fmt.Errorf("%w: campo de busca desconhecido %q", models.ErrInvalidInput, field)
	}
}

// escapeLike escapa os curingas do LIKE para que o padrão seja literal
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func containsPattern(normalized string) string {
	return "%" + escapeLike(normalized) + "%"
}

// buildSelect monta a consulta com as condições unidas por AND e o limite no placeholder informado
func buildSelect(table string, conditions []string, limitPlaceholder string) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(recordColumns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(table)
	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	b.WriteString(" ORDER BY logradouro, cep LIMIT ")
	b.WriteString(limitPlaceholder)
	return b.String()
}

func buildFilterQuery(table string, filter models.AddressFilter, limit int) (string, []any, error) {
	var conditions []string
	var args []any

	add := func(column, value string) {
		value = query.Normalize(value)
		if value == "" {
			return
		}
		args = append(args, containsPattern(value))
		conditions = append(conditions, fmt.Sprintf(`%s LIKE $%d ESCAPE '\'`, column, len(args)))
	}
	add(columnStreetSearch, filter.Street)
	add(columnNeighborhoodSearch, filter.Neighborhood)

	if len(conditions) == 0 {
		return "", nil, fmt.Errorf("%w: informe logradouro ou bairro", models.ErrInvalidInput)
	}

	args = append(args, limit)
	return buildSelect(table, conditions, fmt.Sprintf("$%d", len(args))), args, nil
}

func schemaStatements(table string) []string {
	name := strings.Trim(table, `"`)
	return []string{
		`CREATE TABLE IF NOT EXISTS ` + table + ` (
			id BIGSERIAL PRIMARY KEY,
			cep CHAR(8) NOT NULL,
			logradouro TEXT NOT NULL DEFAULT '',
			bairro TEXT NOT NULL DEFAULT '',
			localidade TEXT NOT NULL DEFAULT '',
			uf CHAR(2) NOT NULL DEFAULT '',
			complemento TEXT,
			logradouro_busca TEXT NOT NULL DEFAULT '',
			bairro_busca TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS ` + pgx.Identifier{name + "_cep_idx"}.Sanitize() + ` ON ` + table + ` (cep)`,
	}
}
