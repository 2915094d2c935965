package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/syssam/javagen/gen"
	"github.com/syssam/javagen/manifest"
	"github.com/syssam/javagen/naming"
	"github.com/syssam/javagen/schema"
)

func jsonResult(v any) (*mcp.CallToolResult, error) {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(buf)), nil
}

// handleConnectTest handles db_connect_test tool calls.
func (s *Server) handleConnectTest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dialectName, err := request.RequireString("dialect")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dsn, err := request.RequireString("dsn")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	conn, err := s.reg.Open(ctx, dialectName, dsn)
	if err != nil {
		s.log.Warnw("connect failed", "dialect", dialectName, "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("connection failed: %v", err)), nil
	}
	s.log.Infow("connected", "dialect", conn.Dialect, "id", conn.ID)
	return jsonResult(map[string]any{
		"connection_id": conn.ID,
		"dialect":       conn.Dialect,
		"status":        "connected",
	})
}

// handleQueryDatabases handles db_query_databases tool calls.
func (s *Server) handleQueryDatabases(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("connection_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	conn, err := s.reg.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	names, err := conn.Inspector.Databases(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing databases: %v", err)), nil
	}
	return jsonResult(map[string]any{"databases": names})
}

// handleQueryTableExists handles db_query_table_exists tool calls.
func (s *Server) handleQueryTableExists(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("connection_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	table, err := request.RequireString("table")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	conn, err := s.reg.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	exists, err := conn.Inspector.TableExists(ctx, table)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("checking %s: %v", table, err)), nil
	}
	return jsonResult(map[string]any{"table": table, "exists": exists})
}

// handleQueryTables handles db_query_tables tool calls.
func (s *Server) handleQueryTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("connection_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	conn, err := s.reg.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tables, err := conn.Inspector.Tables(ctx, request.GetString("schema", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing tables: %v", err)), nil
	}
	type tableInfo struct {
		Name    string `json:"name"`
		Comment string `json:"comment,omitempty"`
	}
	out := make([]tableInfo, 0, len(tables))
	for _, t := range tables {
		out = append(out, tableInfo{Name: t.Name, Comment: t.Comment})
	}
	return jsonResult(map[string]any{"tables": out})
}

// handleTableDescribe handles db_table_describe tool calls.
func (s *Server) handleTableDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("connection_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	table, err := request.RequireString("table")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	conn, err := s.reg.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	desc, err := conn.Inspector.Describe(ctx, table)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("describing %s: %v", table, err)), nil
	}
	type columnInfo struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Nullable bool   `json:"nullable"`
		AutoInc  bool   `json:"auto_increment,omitempty"`
		Comment  string `json:"comment,omitempty"`
	}
	cols := make([]columnInfo, 0, len(desc.Columns))
	for _, c := range desc.Columns {
		cols = append(cols, columnInfo{
			Name:     c.Name,
			Type:     c.ColumnType,
			Nullable: c.Nullable,
			AutoInc:  c.AutoInc,
			Comment:  c.Comment,
		})
	}
	return jsonResult(map[string]any{
		"table":        desc.Table.Name,
		"comment":      desc.Table.Comment,
		"columns":      cols,
		"primary_key":  desc.PrimaryKey,
		"indexes":      desc.Indexes,
		"foreign_keys": desc.ForeignKeys,
	})
}

// handleCodegenAnalyze handles db_codegen_analyze tool calls.
func (s *Server) handleCodegenAnalyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("connection_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tables := request.GetStringSlice("tables", nil)
	if len(tables) == 0 {
		return mcp.NewToolResultError("tables must not be empty"), nil
	}
	conn, err := s.reg.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	normalized, tableErrs, err := gen.NewGenerator(conn.Inspector).Analyze(ctx, tables)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"tables": analyzeReport(normalized),
		"errors": errorReport(tableErrs),
	})
}

type fieldReport struct {
	Column   string `json:"column"`
	Field    string `json:"field"`
	JavaType string `json:"java_type"`
	JDBCType string `json:"jdbc_type"`
	Nullable bool   `json:"nullable"`
	Primary  bool   `json:"primary_key,omitempty"`
	AutoInc  bool   `json:"auto_increment,omitempty"`
	Warning  string `json:"warning,omitempty"`
}

type tableReport struct {
	Table  string        `json:"table"`
	Class  string        `json:"class"`
	Fields []fieldReport `json:"fields"`
}

func analyzeReport(tables []*schema.Table) []tableReport {
	out := make([]tableReport, 0, len(tables))
	for _, t := range tables {
		r := tableReport{Table: t.Name, Class: naming.Default.Pascal(t.Name)}
		for _, c := range t.Columns {
			r.Fields = append(r.Fields, fieldReport{
				Column:   c.Name,
				Field:    c.FieldName,
				JavaType: c.JavaType,
				JDBCType: c.JDBCType,
				Nullable: c.Nullable,
				Primary:  c.PrimaryKey,
				AutoInc:  c.AutoInc,
				Warning:  c.TypeWarning,
			})
		}
		out = append(out, r)
	}
	return out
}

func errorReport(errs []gen.TableError) []map[string]string {
	out := make([]map[string]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, map[string]string{
			"table": e.Table,
			"error": e.Err.Error(),
		})
	}
	return out
}

// handleCodegenGenerate handles db_codegen_generate tool calls.
func (s *Server) handleCodegenGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("connection_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tables := request.GetStringSlice("tables", nil)
	if len(tables) == 0 {
		return mcp.NewToolResultError("tables must not be empty"), nil
	}
	pkg, err := request.RequireString("package")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	variant, err := gen.ParseVariant(request.GetString("variant", string(gen.VariantDefault)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	conn, err := s.reg.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	req := gen.Request{
		Tables:  tables,
		Variant: variant,
		Options: gen.Options{
			Package:         pkg,
			Author:          request.GetString("author", ""),
			Date:            request.GetString("date", ""),
			UseLombok:       request.GetBool("lombok", false),
			UseSwagger:      request.GetBool("swagger", false),
			GenerateDTO:     request.GetBool("dto", false),
			GenerateVO:      request.GetBool("vo", false),
			GenerateMappers: request.GetBool("mappers", false),
		},
	}
	res, err := gen.NewGenerator(conn.Inspector).Generate(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.log.Infow("generated",
		"tables", len(tables),
		"variant", variant,
		"files", len(res.Artifacts),
		"errors", len(res.Errors),
	)

	summary := map[string]any{
		"variant":   string(variant),
		"files":     len(res.Artifacts),
		"errors":    errorReport(res.Errors),
		"warnings":  res.Warnings,
		"cancelled": res.Cancelled,
	}
	if len(res.Collisions) > 0 {
		var collisions []string
		for _, c := range res.Collisions {
			collisions = append(collisions, c.Error())
		}
		summary["collisions"] = collisions
	}

	outputDir := request.GetString("output_dir", "")
	if outputDir == "" {
		summary["artifacts"] = res.Artifacts
		return jsonResult(summary)
	}
	written, err := gen.WriteArtifacts(outputDir, res.Artifacts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	summary["output_dir"] = outputDir
	summary["written"] = written
	return jsonResult(summary)
}

// handleAnalyzeDependencies handles springboot_analyze_dependencies tool calls.
func (s *Server) handleAnalyzeDependencies(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pomPath, err := request.RequireString("pom_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	variant, err := gen.ParseVariant(request.GetString("variant", string(gen.VariantDefault)))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	f, err := os.Open(pomPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("opening %s: %v", pomPath, err)), nil
	}
	defer f.Close()
	m, err := manifest.Parse(f)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts := gen.Options{
		UseLombok:       request.GetBool("lombok", false),
		UseSwagger:      request.GetBool("swagger", false),
		GenerateMappers: request.GetBool("mappers", false),
	}
	reqs := manifest.Required(variant, opts, request.GetString("dialect", ""))
	patch := manifest.Reconcile(m, reqs)
	return jsonResult(map[string]any{
		"project":   m.GroupID + ":" + m.ArtifactID,
		"satisfied": patch.Empty(),
		"additions": patch.Additions,
		"upgrades":  patch.Upgrades,
		"snippet":   patch.Snippet(),
	})
}
