// Package services composes the table selection, routing, and prompt layers
// into the operations the UI calls.
package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sqlgrip/sqlgrip-engine/pkg/apperrors"
	"github.com/sqlgrip/sqlgrip-engine/pkg/llm"
	"github.com/sqlgrip/sqlgrip-engine/pkg/logging"
	"github.com/sqlgrip/sqlgrip-engine/pkg/models"
	"github.com/sqlgrip/sqlgrip-engine/pkg/prompts"
	"github.com/sqlgrip/sqlgrip-engine/pkg/selection"
	sqltext "github.com/sqlgrip/sqlgrip-engine/pkg/sql"
)

const (
	// maxReferenceTables caps the style-reference tables included in a
	// CREATE TABLE prompt.
	maxReferenceTables = 5

	// maxHistoryMessages caps the conversation turns carried into an ALTER
	// TABLE prompt.
	maxHistoryMessages = 10
)

// QueryRequest carries everything needed to generate query SQL.
type QueryRequest struct {
	UserRequest string
	Schemas     []models.TableSchema
	Dialect     models.Dialect
	CurrentSQL  string
	EnumValues  map[string][]string // actual stored values, when fetched
}

// GenerationResult is the outcome of a SQL generation operation.
type GenerationResult struct {
	SQL string

	// DroppedStatements counts extra statements discarded when the model
	// returned more than one.
	DroppedStatements int

	// InjectionWarnings lists string literals in the generated SQL that
	// look like injection payloads. Advisory; the SQL is still returned.
	InjectionWarnings []sqltext.InjectionCheckResult
}

// Assistant is the engine's public surface: SQL generation, table selection,
// enum handling, and connection-config parsing.
type Assistant interface {
	GenerateQuery(ctx context.Context, req *QueryRequest) (*GenerationResult, error)
	GenerateCreateTable(ctx context.Context, userRequest string, referenceSchemas []models.TableSchema, dialect models.Dialect) (*GenerationResult, error)
	GenerateAlterTable(ctx context.Context, userRequest string, targetSchema models.TableSchema, dialect models.Dialect, history []models.ChatMessage) (*GenerationResult, error)
	SelectTables(ctx context.Context, userRequest string, catalog []models.TableInfo, currentSQL string) (*selection.Result, error)
	SelectReferenceTables(ctx context.Context, userRequest string, catalog []models.TableInfo) ([]string, error)
	SelectEnumColumns(ctx context.Context, schema models.TableSchema, dialect models.Dialect) ([]string, error)
	ShouldQueryEnumValues(ctx context.Context, userRequest string, enumColumns []string) (bool, error)
	ParseConnectionConfig(ctx context.Context, pastedText string) (*models.ConnectionParams, error)
}

type assistant struct {
	router   *llm.Router
	selector *selection.Selector
	logger   *zap.Logger

	// queryEnumValues gates the enum-value-need judgement; when false,
	// ShouldQueryEnumValues always answers no.
	queryEnumValues bool
}

// NewAssistant creates the assistant service over a configured router.
func NewAssistant(router *llm.Router, queryEnumValues bool, logger *zap.Logger) Assistant {
	return &assistant{
		router:          router,
		selector:        selection.NewSelector(router, logger),
		logger:          logger.Named("assistant"),
		queryEnumValues: queryEnumValues,
	}
}

// GenerateQuery produces a single query statement for the request. DDL in the
// response is rejected; schema changes go through the dedicated operations.
func (a *assistant) GenerateQuery(ctx context.Context, req *QueryRequest) (*GenerationResult, error) {
	if strings.TrimSpace(req.UserRequest) == "" {
		return nil, apperrors.ErrEmptyRequest
	}

	resp, err := a.router.Invoke(ctx, llm.OpGenerateQuery,
		prompts.GenerateQuerySystem(req.Dialect),
		prompts.GenerateQueryUser(req.UserRequest, req.Schemas, req.CurrentSQL, req.EnumValues))
	if err != nil {
		return nil, fmt.Errorf("generate query: %w", err)
	}

	result, err := a.extractStatement(resp.Content)
	if err != nil {
		return nil, err
	}

	if sqltext.IsDDL(result.SQL) {
		a.logger.Warn("query generation produced DDL, rejecting",
			zap.String("sql", logging.TruncateString(result.SQL, logging.MaxPromptLogLength)))
		return nil, apperrors.NewGenerationError("response is a schema-change statement, not a query", resp.Content)
	}

	return result, nil
}

// GenerateCreateTable produces a CREATE TABLE statement styled after the
// reference schemas.
func (a *assistant) GenerateCreateTable(ctx context.Context, userRequest string, referenceSchemas []models.TableSchema, dialect models.Dialect) (*GenerationResult, error) {
	if strings.TrimSpace(userRequest) == "" {
		return nil, apperrors.ErrEmptyRequest
	}

	if len(referenceSchemas) > maxReferenceTables {
		referenceSchemas = referenceSchemas[:maxReferenceTables]
	}

	resp, err := a.router.Invoke(ctx, llm.OpGenerateCreateTable,
		prompts.GenerateCreateTableSystem(dialect),
		prompts.GenerateCreateTableUser(userRequest, referenceSchemas))
	if err != nil {
		return nil, fmt.Errorf("generate create table: %w", err)
	}

	result, err := a.extractStatement(resp.Content)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(strings.ToUpper(result.SQL), "CREATE") {
		return nil, apperrors.NewGenerationError("response is not a CREATE statement", resp.Content)
	}

	return result, nil
}

// GenerateAlterTable produces an ALTER TABLE statement for the target table,
// carrying recent conversation turns for follow-up context.
func (a *assistant) GenerateAlterTable(ctx context.Context, userRequest string, targetSchema models.TableSchema, dialect models.Dialect, history []models.ChatMessage) (*GenerationResult, error) {
	if strings.TrimSpace(userRequest) == "" {
		return nil, apperrors.ErrEmptyRequest
	}

	resp, err := a.router.Invoke(ctx, llm.OpGenerateAlterTable,
		prompts.GenerateAlterTableSystem(dialect),
		prompts.GenerateAlterTableUser(userRequest, targetSchema, models.LastMessages(history, maxHistoryMessages)))
	if err != nil {
		return nil, fmt.Errorf("generate alter table: %w", err)
	}

	result, err := a.extractStatement(resp.Content)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(strings.ToUpper(result.SQL), "ALTER") {
		return nil, apperrors.NewGenerationError("response is not an ALTER statement", resp.Content)
	}

	return result, nil
}

// SelectTables narrows the catalog to the tables relevant to the request.
func (a *assistant) SelectTables(ctx context.Context, userRequest string, catalog []models.TableInfo, currentSQL string) (*selection.Result, error) {
	return a.selector.SelectTables(ctx, userRequest, catalog, currentSQL)
}

// SelectReferenceTables picks existing tables whose design the new table
// should follow. Failures degrade to an empty list; reference tables are an
// enhancement, not a requirement.
func (a *assistant) SelectReferenceTables(ctx context.Context, userRequest string, catalog []models.TableInfo) ([]string, error) {
	if len(catalog) == 0 {
		return nil, nil
	}
	if len(catalog) > selection.MaxCatalogSize {
		catalog = catalog[:selection.MaxCatalogSize]
	}

	resp, err := a.router.Invoke(ctx, llm.OpSelectReferenceTable,
		prompts.SelectReferenceTablesSystem(),
		prompts.SelectReferenceTablesUser(userRequest, catalog, maxReferenceTables))
	if err != nil {
		a.logger.Warn("reference table selection failed, continuing without", zap.Error(err))
		return nil, nil
	}

	names := filterToNames(llm.ParseNameList(resp.Content), models.TableNames(catalog))
	if len(names) > maxReferenceTables {
		names = names[:maxReferenceTables]
	}
	return names, nil
}

// SelectEnumColumns identifies columns whose value domain is a small fixed
// set.
func (a *assistant) SelectEnumColumns(ctx context.Context, schema models.TableSchema, dialect models.Dialect) ([]string, error) {
	if len(schema.Columns) == 0 {
		return nil, nil
	}

	resp, err := a.router.Invoke(ctx, llm.OpSelectEnumColumns,
		prompts.SelectEnumColumnsSystem(),
		prompts.SelectEnumColumnsUser(schema, dialect))
	if err != nil {
		return nil, fmt.Errorf("select enum columns: %w", err)
	}

	if strings.EqualFold(strings.TrimSpace(llm.ExtractSQL(resp.Content)), "NONE") {
		return nil, nil
	}

	columnNames := make([]string, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		columnNames = append(columnNames, col.Name)
	}
	return filterToNames(llm.ParseNameList(resp.Content), columnNames), nil
}

// ShouldQueryEnumValues decides whether actual enum values must be fetched
// before generation. With no enum columns there is nothing to decide and no
// model call is made.
func (a *assistant) ShouldQueryEnumValues(ctx context.Context, userRequest string, enumColumns []string) (bool, error) {
	if !a.queryEnumValues || len(enumColumns) == 0 {
		return false, nil
	}

	resp, err := a.router.Invoke(ctx, llm.OpJudgeEnumValues,
		prompts.JudgeEnumValuesSystem(),
		prompts.JudgeEnumValuesUser(userRequest, enumColumns))
	if err != nil {
		// Skipping the value fetch only risks a less precise query.
		a.logger.Warn("enum value judgement failed, skipping value fetch", zap.Error(err))
		return false, nil
	}

	answer := strings.ToLower(strings.TrimSpace(llm.ExtractSQL(resp.Content)))
	return strings.HasPrefix(answer, "yes") || strings.HasPrefix(answer, "true"), nil
}

// ParseConnectionConfig recovers connection parameters from pasted
// configuration text. Local parsers handle URLs and key-value properties
// without a model call; everything else goes to the turbo model.
func (a *assistant) ParseConnectionConfig(ctx context.Context, pastedText string) (*models.ConnectionParams, error) {
	text := strings.TrimSpace(pastedText)
	if text == "" {
		return nil, apperrors.ErrEmptyRequest
	}

	if params := parseConnectionLocally(text); !params.IsZero() {
		a.logger.Debug("connection config parsed locally",
			zap.String("db_type", params.DBType))
		a.screenConnectionParams(params)
		return params, nil
	}

	resp, err := a.router.Invoke(ctx, llm.OpParseConnectionConf,
		prompts.ParseConnectionConfigSystem(),
		prompts.ParseConnectionConfigUser(text))
	if err != nil {
		return nil, fmt.Errorf("parse connection config: %w", err)
	}

	params, err := llm.ParseJSONResponse[models.ConnectionParams](resp.Content)
	if err != nil {
		return nil, apperrors.NewGenerationError("connection parameters could not be parsed from response", resp.Content)
	}
	if params.IsZero() {
		return nil, apperrors.NewGenerationError("no connection parameters found in text", resp.Content)
	}

	a.screenConnectionParams(&params)
	return &params, nil
}

// screenConnectionParams flags recovered parameters that look like injection
// payloads. The values end up inside connection strings, so a quote-breaking
// database or host name is worth a warning before the GUI uses them. The
// password is excluded; arbitrary secrets trip the screen constantly.
func (a *assistant) screenConnectionParams(params *models.ConnectionParams) {
	fields := map[string]string{
		"db_type":      params.DBType,
		"host":         params.Host,
		"port":         params.Port,
		"database":     params.Database,
		"username":     params.Username,
		"driver_class": params.DriverClass,
	}
	for field, value := range fields {
		if finding := sqltext.CheckValueForInjection(value); finding != nil {
			a.logger.Warn("suspicious connection parameter",
				zap.String("field", field),
				zap.String("fingerprint", finding.Fingerprint))
		}
	}
}

// extractStatement reduces a raw model response to one normalized statement,
// with injection screening of its string literals.
func (a *assistant) extractStatement(raw string) (*GenerationResult, error) {
	cleaned := llm.ExtractSQL(raw)
	if cleaned == "" {
		return nil, apperrors.NewGenerationError("response contained no SQL", raw)
	}

	stmt, dropped, err := sqltext.FirstStatement(cleaned)
	if err != nil {
		return nil, apperrors.NewGenerationError("response contained no SQL statement", raw)
	}
	if dropped > 0 {
		a.logger.Warn("model returned multiple statements, keeping first",
			zap.Int("dropped", dropped))
	}

	warnings := sqltext.ScreenLiterals(stmt)
	if len(warnings) > 0 {
		a.logger.Warn("generated SQL contains suspicious literals",
			zap.Int("count", len(warnings)))
	}

	return &GenerationResult{
		SQL:               stmt,
		DroppedStatements: dropped,
		InjectionWarnings: warnings,
	}, nil
}

// filterToNames keeps candidates present in allowed, restoring allowed
// casing and dropping duplicates.
func filterToNames(candidates, allowed []string) []string {
	canonical := make(map[string]string, len(allowed))
	for _, name := range allowed {
		canonical[strings.ToLower(name)] = name
	}

	seen := make(map[string]bool)
	var kept []string
	for _, c := range candidates {
		name, ok := canonical[strings.ToLower(strings.TrimSpace(c))]
		if ok && !seen[name] {
			seen[name] = true
			kept = append(kept, name)
		}
	}
	return kept
}
