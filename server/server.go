// Package server exposes javagen over the Model Context Protocol. One server
// session owns a connection registry; every tool call addresses a connection
// by the id returned from db_connect_test.
package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Version is the protocol-visible server version.
const Version = "1.0.0"

// Server wraps the MCP server, the connection registry and the logger.
type Server struct {
	log    *zap.SugaredLogger
	reg    *Registry
	server *server.MCPServer
}

// New creates a server with all tools registered.
func New(log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Server{
		log: log,
		reg: NewRegistry(),
	}
	s.server = server.NewMCPServer(
		"javagen",
		Version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	connectTool := mcp.NewTool("db_connect_test",
		mcp.WithDescription("Open and verify a database connection; returns a connection id for the other tools"),
		mcp.WithString("dialect",
			mcp.Required(),
			mcp.Description("Database dialect: mysql, postgres or sqlite"),
		),
		mcp.WithString("dsn",
			mcp.Required(),
			mcp.Description("Driver-specific data source name"),
		),
	)
	s.server.AddTool(connectTool, s.handleConnectTest)

	databasesTool := mcp.NewTool("db_query_databases",
		mcp.WithDescription("List the databases visible through a connection"),
		mcp.WithString("connection_id",
			mcp.Required(),
			mcp.Description("Id returned by db_connect_test"),
		),
	)
	s.server.AddTool(databasesTool, s.handleQueryDatabases)

	tablesTool := mcp.NewTool("db_query_tables",
		mcp.WithDescription("List the tables visible through a connection"),
		mcp.WithString("connection_id",
			mcp.Required(),
			mcp.Description("Id returned by db_connect_test"),
		),
		mcp.WithString("schema",
			mcp.Description("Schema/database name; defaults to the connection's current schema"),
		),
	)
	s.server.AddTool(tablesTool, s.handleQueryTables)

	existsTool := mcp.NewTool("db_query_table_exists",
		mcp.WithDescription("Check whether a table exists in the connection's current schema"),
		mcp.WithString("connection_id",
			mcp.Required(),
			mcp.Description("Id returned by db_connect_test"),
		),
		mcp.WithString("table",
			mcp.Required(),
			mcp.Description("Table name"),
		),
	)
	s.server.AddTool(existsTool, s.handleQueryTableExists)

	describeTool := mcp.NewTool("db_table_describe",
		mcp.WithDescription("Describe one table: columns, keys, indexes and foreign keys"),
		mcp.WithString("connection_id",
			mcp.Required(),
			mcp.Description("Id returned by db_connect_test"),
		),
		mcp.WithString("table",
			mcp.Required(),
			mcp.Description("Table name"),
		),
	)
	s.server.AddTool(describeTool, s.handleTableDescribe)

	analyzeTool := mcp.NewTool("db_codegen_analyze",
		mcp.WithDescription("Preview the Java mapping for a set of tables without generating files"),
		mcp.WithString("connection_id",
			mcp.Required(),
			mcp.Description("Id returned by db_connect_test"),
		),
		mcp.WithArray("tables",
			mcp.Required(),
			mcp.Description("Tables to analyze"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
	s.server.AddTool(analyzeTool, s.handleCodegenAnalyze)

	generateTool := mcp.NewTool("db_codegen_generate",
		mcp.WithDescription("Generate the layered Java skeleton for a set of tables"),
		mcp.WithString("connection_id",
			mcp.Required(),
			mcp.Description("Id returned by db_connect_test"),
		),
		mcp.WithArray("tables",
			mcp.Required(),
			mcp.Description("Tables to generate"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("variant",
			mcp.Description("Template variant: Default, MybatisPlus or MybatisPlus-Mixed (default: Default)"),
		),
		mcp.WithString("package",
			mcp.Required(),
			mcp.Description("Base Java package, e.g. com.example.app"),
		),
		mcp.WithString("author",
			mcp.Description("Author written into the generated javadoc"),
		),
		mcp.WithString("date",
			mcp.Description("Date written into the generated javadoc, verbatim"),
		),
		mcp.WithString("output_dir",
			mcp.Description("Directory to write files into; when omitted the files are returned inline"),
		),
		mcp.WithBoolean("lombok", mcp.Description("Annotate entities with Lombok (default: false)")),
		mcp.WithBoolean("swagger", mcp.Description("Annotate with OpenAPI/Swagger (default: false)")),
		mcp.WithBoolean("dto", mcp.Description("Generate DTO classes (default: false)")),
		mcp.WithBoolean("vo", mcp.Description("Generate VO classes (default: false)")),
		mcp.WithBoolean("mappers", mcp.Description("Generate MapStruct mappers (default: false)")),
	)
	s.server.AddTool(generateTool, s.handleCodegenGenerate)

	depsTool := mcp.NewTool("springboot_analyze_dependencies",
		mcp.WithDescription("Compare a Spring Boot pom.xml against the dependencies the generated code needs"),
		mcp.WithString("pom_path",
			mcp.Required(),
			mcp.Description("Path to the project's pom.xml"),
		),
		mcp.WithString("variant",
			mcp.Description("Template variant the code was generated with (default: Default)"),
		),
		mcp.WithString("dialect",
			mcp.Description("Database dialect: mysql, postgres or sqlite"),
		),
		mcp.WithBoolean("lombok", mcp.Description("Code uses Lombok")),
		mcp.WithBoolean("swagger", mcp.Description("Code uses OpenAPI/Swagger")),
		mcp.WithBoolean("mappers", mcp.Description("Code uses MapStruct")),
	)
	s.server.AddTool(depsTool, s.handleAnalyzeDependencies)
}

// ServeStdio serves the session over stdin/stdout until the client closes.
func (s *Server) ServeStdio() error {
	defer s.reg.CloseAll()
	s.log.Infow("serving", "transport", "stdio", "version", Version)
	return server.ServeStdio(s.server)
}
