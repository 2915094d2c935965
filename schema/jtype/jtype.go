// Package jtype maps database column types to Java types. The mapping is a
// pure, process-wide rule table: same input, same output, for the lifetime of
// the process.
package jtype

import (
	"strings"
)

// Mapping is the target-language annotation for one column type.
type Mapping struct {
	Java    string // Java type spelling, e.g. "BigDecimal"
	JDBC    string // MyBatis jdbcType attribute, e.g. "DECIMAL"
	Import  string // fully qualified import, empty for java.lang types
	Warning string // non-empty when the database type was not recognized
}

// rule is one row of the type table.
type rule struct {
	java  string
	jdbc  string
	imprt string
}

// table maps the upper-cased base database type to its Java annotation.
// Scaled numerics map to BigDecimal, never to a floating type, so that
// generated code cannot silently lose precision.
var table = map[string]rule{
	// integers
	"TINYINT":   {java: "Byte", jdbc: "TINYINT"},
	"SMALLINT":  {java: "Short", jdbc: "SMALLINT"},
	"MEDIUMINT": {java: "Integer", jdbc: "INTEGER"},
	"INT":       {java: "Integer", jdbc: "INTEGER"},
	"INTEGER":   {java: "Integer", jdbc: "INTEGER"},
	"INT2":      {java: "Short", jdbc: "SMALLINT"},
	"INT4":      {java: "Integer", jdbc: "INTEGER"},
	"INT8":      {java: "Long", jdbc: "BIGINT"},
	"BIGINT":    {java: "Long", jdbc: "BIGINT"},
	"SERIAL":    {java: "Integer", jdbc: "INTEGER"},
	"BIGSERIAL": {java: "Long", jdbc: "BIGINT"},
	"YEAR":      {java: "Integer", jdbc: "INTEGER"},

	// floating point and exact numerics
	"FLOAT":            {java: "Float", jdbc: "FLOAT"},
	"FLOAT4":           {java: "Float", jdbc: "FLOAT"},
	"REAL":             {java: "Float", jdbc: "REAL"},
	"DOUBLE":           {java: "Double", jdbc: "DOUBLE"},
	"FLOAT8":           {java: "Double", jdbc: "DOUBLE"},
	"DOUBLE PRECISION": {java: "Double", jdbc: "DOUBLE"},
	"DECIMAL":          {java: "BigDecimal", jdbc: "DECIMAL", imprt: "java.math.BigDecimal"},
	"NUMERIC":          {java: "BigDecimal", jdbc: "NUMERIC", imprt: "java.math.BigDecimal"},
	"MONEY":            {java: "BigDecimal", jdbc: "DECIMAL", imprt: "java.math.BigDecimal"},

	// strings
	"CHAR":       {java: "String", jdbc: "CHAR"},
	"VARCHAR":    {java: "String", jdbc: "VARCHAR"},
	"TEXT":       {java: "String", jdbc: "LONGVARCHAR"},
	"TINYTEXT":   {java: "String", jdbc: "VARCHAR"},
	"MEDIUMTEXT": {java: "String", jdbc: "LONGVARCHAR"},
	"LONGTEXT":   {java: "String", jdbc: "LONGVARCHAR"},
	"NCHAR":      {java: "String", jdbc: "NCHAR"},
	"NVARCHAR":   {java: "String", jdbc: "NVARCHAR"},
	"ENUM":       {java: "String", jdbc: "VARCHAR"},
	"SET":        {java: "String", jdbc: "VARCHAR"},
	"JSON":       {java: "String", jdbc: "LONGVARCHAR"},
	"JSONB":      {java: "String", jdbc: "LONGVARCHAR"},

	// date and time
	"DATE":        {java: "LocalDate", jdbc: "DATE", imprt: "java.time.LocalDate"},
	"TIME":        {java: "LocalTime", jdbc: "TIME", imprt: "java.time.LocalTime"},
	"DATETIME":    {java: "LocalDateTime", jdbc: "TIMESTAMP", imprt: "java.time.LocalDateTime"},
	"TIMESTAMP":   {java: "LocalDateTime", jdbc: "TIMESTAMP", imprt: "java.time.LocalDateTime"},
	"TIMESTAMPTZ": {java: "OffsetDateTime", jdbc: "TIMESTAMP_WITH_TIMEZONE", imprt: "java.time.OffsetDateTime"},

	// boolean
	"BOOL":    {java: "Boolean", jdbc: "BOOLEAN"},
	"BOOLEAN": {java: "Boolean", jdbc: "BOOLEAN"},

	// binary
	"BIT":        {java: "byte[]", jdbc: "BINARY"}, // bit(1) becomes Boolean before the table applies
	"BINARY":     {java: "byte[]", jdbc: "BINARY"},
	"VARBINARY":  {java: "byte[]", jdbc: "VARBINARY"},
	"TINYBLOB":   {java: "byte[]", jdbc: "VARBINARY"},
	"BLOB":       {java: "byte[]", jdbc: "BLOB"},
	"MEDIUMBLOB": {java: "byte[]", jdbc: "LONGVARBINARY"},
	"LONGBLOB":   {java: "byte[]", jdbc: "LONGVARBINARY"},
	"BYTEA":      {java: "byte[]", jdbc: "BINARY"},

	// misc
	"UUID": {java: "String", jdbc: "VARCHAR"},
}

// fallback annotates unrecognized database types. Generation still proceeds;
// the warning travels with the column so callers can surface it.
var fallback = rule{java: "String", jdbc: "VARCHAR"}

// BoolDisplayWidth is the display width at which a tinyint or bit column is
// treated as a boolean. This is the TinyInt1Bool rule: tinyint(1) and bit(1)
// are the conventional MySQL spellings for a flag column.
const BoolDisplayWidth = 1

// IsBoolLike reports whether the TinyInt1Bool rule applies to the given base
// type and display width.
func IsBoolLike(baseType string, width int64) bool {
	switch strings.ToUpper(baseType) {
	case "TINYINT", "BIT":
		return width == BoolDisplayWidth
	}
	return false
}

// Map returns the Java annotation for one column type. dbType may carry a
// parenthesized size suffix ("varchar(50)", "tinyint(1) unsigned"); when it
// carries none, as Postgres type names never do, the catalog precision stands
// in as the display width for the boolean-like types. nullable and scale are
// the remaining catalog facts of the column contract; the mapping itself is
// decided by the type alone. Map is total: unknown types yield the fallback
// mapping with a warning, never an error.
func Map(dbType string, nullable bool, precision, scale int64) Mapping {
	base, width := splitType(dbType)
	if width == 0 && precision > 0 {
		switch base {
		case "TINYINT", "BIT":
			width = precision
		}
	}
	if IsBoolLike(base, width) {
		r := table["BOOLEAN"]
		return Mapping{Java: r.java, JDBC: r.jdbc}
	}
	r, ok := table[base]
	if !ok {
		return Mapping{
			Java:    fallback.java,
			JDBC:    fallback.jdbc,
			Warning: "unrecognized database type " + strings.ToLower(base) + ", mapped to String",
		}
	}
	return Mapping{Java: r.java, JDBC: r.jdbc, Import: r.imprt}
}

// splitType separates "tinyint(1) unsigned" into base type "TINYINT" and
// display width 1. A missing or non-numeric width yields zero.
func splitType(dbType string) (base string, width int64) {
	s := strings.TrimSpace(dbType)
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return strings.ToUpper(trimModifiers(s)), 0
	}
	base = strings.ToUpper(strings.TrimSpace(s[:open]))
	rest := s[open+1:]
	close := strings.IndexByte(rest, ')')
	if close < 0 {
		return base, 0
	}
	arg := rest[:close]
	if comma := strings.IndexByte(arg, ','); comma >= 0 {
		arg = arg[:comma]
	}
	for _, c := range arg {
		if c < '0' || c > '9' {
			return base, 0
		}
	}
	for _, c := range arg {
		width = width*10 + int64(c-'0')
	}
	return base, width
}

// trimModifiers drops trailing modifiers like "unsigned" or "zerofill".
func trimModifiers(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}
