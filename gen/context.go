package gen

import (
	"sort"

	"github.com/syssam/javagen/naming"
	"github.com/syssam/javagen/schema"
)

// Context is the fully resolved value set one rendering pass consumes for
// one table under one option set. It is built fresh per (table, options)
// pair and never mutated after construction.
//
// Option-gated sections (Lombok, Swagger, DTO, VO, MapStruct) are nil when
// the option is off. Templates must reach all option-specific output through
// these sections, so rendering option text against a disabled option fails
// the render instead of producing silently-wrong code.
type Context struct {
	ClassName    string
	VarName      string // camelCase instance name, e.g. "userInfo"
	TableName    string
	TableComment string
	BasePackage  string
	Packages     Packages
	Author       string
	Date         string
	SerialUID    string

	Columns       []*ColumnContext
	InsertColumns []*ColumnContext // columns written on insert, auto-increment excluded
	PrimaryKey    *ColumnContext   // first key column; nil for keyless tables
	PrimaryKeys   []*ColumnContext // all key columns, column order
	OtherColumns  []*ColumnContext // non-key columns, column order
	HasPrimaryKey bool
	CompositeKey  bool

	Imports []string // type imports referenced by the entity, sorted, unique

	UseLombok  bool
	UseSwagger bool

	Lombok    *LombokContext
	Swagger   *SwaggerContext
	DTO       *ShapeContext
	VO        *ShapeContext
	MapStruct *MapStructContext

	Warnings []string // type-mapping warnings collected from the columns
}

// Packages holds the per-layer Java package names.
type Packages struct {
	Entity      string
	Dao         string
	Service     string
	ServiceImpl string
	Controller  string
	DTO         string
	VO          string
	Mapper      string
}

// ColumnContext is the template view of one column.
type ColumnContext struct {
	Name         string // database column name
	FieldName    string // Java field name
	CapitalField string // field name with the first letter upper-cased
	JavaType     string
	JDBCType     string
	Comment      string
	Nullable     bool
	PrimaryKey   bool
	AutoInc      bool
	Required     bool // not nullable and not part of the key
	IsString     bool
	MaxLength    int64
	Last         bool
}

// LombokContext carries the Lombok spellings; nil unless UseLombok.
type LombokContext struct {
	Imports     []string
	Annotations []string
}

// SwaggerContext carries every Swagger/OpenAPI spelling; nil unless
// UseSwagger. All swagger text in templates flows through this struct.
type SwaggerContext struct {
	Imports           []string // entity/dto/vo-level imports
	ControllerImports []string
	Model             string            // class-level @Schema annotation
	Tag               string            // controller-level @Tag annotation
	Fields            map[string]string // field name -> @Schema annotation
	Operations        map[string]string // operation id -> @Operation annotation
}

// ShapeContext describes a projection class (DTO or VO); nil unless the
// matching generate option is set.
type ShapeContext struct {
	ClassName string
	Imports   []string
	Columns   []*ColumnContext
}

// MapStructContext describes the MapStruct mapper; nil unless
// GenerateMappers.
type MapStructContext struct {
	ClassName      string
	DTOName        string
	VOName         string
	ComponentModel string
	Imports        []string
}

// BuildContext projects one table's metadata onto the rendering context for
// the given options. It is pure: same table, same options, same context.
func BuildContext(t *schema.Table, opts Options, rule *naming.Rule) *Context {
	if rule == nil {
		rule = naming.Default
	}
	className := rule.Pascal(t.Name)
	base := opts.Package
	ctx := &Context{
		ClassName:    className,
		VarName:      rule.Camel(t.Name),
		TableName:    t.Name,
		TableComment: comment(t.Comment, className),
		BasePackage:  base,
		Packages: Packages{
			Entity:      base + ".entity",
			Dao:         base + ".dao",
			Service:     base + ".service",
			ServiceImpl: base + ".service.impl",
			Controller:  base + ".controller",
			DTO:         base + ".dto",
			VO:          base + ".vo",
			Mapper:      base + ".mapper",
		},
		Author:     opts.Author,
		Date:       opts.Date,
		SerialUID:  "1",
		UseLombok:  opts.UseLombok,
		UseSwagger: opts.UseSwagger,
	}

	for i, c := range t.Columns {
		cc := &ColumnContext{
			Name:         c.Name,
			FieldName:    c.FieldName,
			CapitalField: rule.Capitalize(c.FieldName),
			JavaType:     c.JavaType,
			JDBCType:     c.JDBCType,
			Comment:      comment(c.Comment, c.Name),
			Nullable:     c.Nullable,
			PrimaryKey:   c.PrimaryKey,
			AutoInc:      c.AutoInc,
			Required:     !c.Nullable && !c.PrimaryKey,
			IsString:     c.JavaType == "String",
			MaxLength:    c.MaxLength,
			Last:         i == len(t.Columns)-1,
		}
		ctx.Columns = append(ctx.Columns, cc)
		if !c.AutoInc {
			ctx.InsertColumns = append(ctx.InsertColumns, cc)
		}
		if c.PrimaryKey {
			ctx.PrimaryKeys = append(ctx.PrimaryKeys, cc)
		} else {
			ctx.OtherColumns = append(ctx.OtherColumns, cc)
		}
		if c.TypeWarning != "" {
			ctx.Warnings = append(ctx.Warnings, c.Name+": "+c.TypeWarning)
		}
	}
	ctx.HasPrimaryKey = len(ctx.PrimaryKeys) > 0
	ctx.CompositeKey = len(ctx.PrimaryKeys) > 1
	if ctx.HasPrimaryKey {
		ctx.PrimaryKey = ctx.PrimaryKeys[0]
	}
	ctx.Imports = typeImports(ctx.Columns)

	if opts.UseLombok {
		ctx.Lombok = &LombokContext{
			Imports:     []string{"lombok.AllArgsConstructor", "lombok.Data", "lombok.NoArgsConstructor"},
			Annotations: []string{"@Data", "@NoArgsConstructor", "@AllArgsConstructor"},
		}
	}
	if opts.UseSwagger {
		ctx.Swagger = swaggerContext(ctx)
	}
	if opts.GenerateDTO {
		ctx.DTO = &ShapeContext{
			ClassName: className + "DTO",
			Imports:   typeImports(ctx.OtherColumns),
			Columns:   ctx.OtherColumns,
		}
	}
	if opts.GenerateVO {
		ctx.VO = &ShapeContext{
			ClassName: className + "VO",
			Imports:   typeImports(ctx.Columns),
			Columns:   ctx.Columns,
		}
	}
	if opts.GenerateMappers {
		imports := []string{
			ctx.Packages.Entity + "." + className,
			"org.mapstruct.Mapper",
			"org.mapstruct.factory.Mappers",
		}
		if opts.GenerateDTO {
			imports = append(imports, ctx.Packages.DTO+"."+className+"DTO")
		}
		if opts.GenerateVO {
			imports = append(imports, ctx.Packages.VO+"."+className+"VO")
		}
		sort.Strings(imports)
		ctx.MapStruct = &MapStructContext{
			ClassName:      className + "Mapper",
			DTOName:        className + "DTO",
			VOName:         className + "VO",
			ComponentModel: "spring",
			Imports:        imports,
		}
	}
	return ctx
}

// typeImports collects the imports actually referenced by the given columns,
// de-duplicated and alphabetically ordered for reproducible output.
func typeImports(cols []*ColumnContext) []string {
	seen := make(map[string]bool)
	var imports []string
	for _, c := range cols {
		imp := importFor(c.JavaType)
		if imp != "" && !seen[imp] {
			seen[imp] = true
			imports = append(imports, imp)
		}
	}
	sort.Strings(imports)
	return imports
}

// importFor returns the import a Java type spelling requires.
func importFor(javaType string) string {
	switch javaType {
	case "BigDecimal":
		return "java.math.BigDecimal"
	case "LocalDate":
		return "java.time.LocalDate"
	case "LocalTime":
		return "java.time.LocalTime"
	case "LocalDateTime":
		return "java.time.LocalDateTime"
	case "OffsetDateTime":
		return "java.time.OffsetDateTime"
	default:
		return ""
	}
}

// swaggerContext precomputes every swagger spelling for one table.
func swaggerContext(ctx *Context) *SwaggerContext {
	fields := make(map[string]string, len(ctx.Columns))
	for _, c := range ctx.Columns {
		fields[c.FieldName] = `@Schema(description = "` + c.Comment + `")`
	}
	return &SwaggerContext{
		Imports:           []string{"io.swagger.v3.oas.annotations.media.Schema"},
		ControllerImports: []string{"io.swagger.v3.oas.annotations.Operation", "io.swagger.v3.oas.annotations.tags.Tag"},
		Model:             `@Schema(description = "` + ctx.TableComment + `")`,
		Tag:               `@Tag(name = "` + ctx.ClassName + `", description = "` + ctx.TableComment + `")`,
		Fields:            fields,
		Operations: map[string]string{
			"list":        `@Operation(summary = "List all ` + ctx.ClassName + ` records")`,
			"get":         `@Operation(summary = "Get one ` + ctx.ClassName + ` by id")`,
			"create":      `@Operation(summary = "Create a ` + ctx.ClassName + `")`,
			"createBatch": `@Operation(summary = "Create a batch of ` + ctx.ClassName + ` records")`,
			"update":      `@Operation(summary = "Update a ` + ctx.ClassName + `")`,
			"delete":      `@Operation(summary = "Delete one ` + ctx.ClassName + ` by id")`,
		},
	}
}

// comment falls back to the identifier when the database has no comment, so
// generated javadoc never renders empty.
func comment(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return c
}
