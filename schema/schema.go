// Package schema turns raw catalog facts into validated, immutable table
// metadata. A Table is built once per generation request and discarded with
// it; the database may change between requests, so nothing here is cached.
package schema

import (
	"github.com/syssam/javagen/dialect/inspect"
	"github.com/syssam/javagen/naming"
	"github.com/syssam/javagen/schema/jtype"
)

// Column is the validated metadata for one column, annotated with its Java
// type. Treated as immutable once built.
type Column struct {
	Name        string // database column name
	FieldName   string // Java field name, camelCase
	JavaType    string
	JDBCType    string
	Import      string // import required by JavaType, empty for java.lang
	Nullable    bool
	PrimaryKey  bool
	AutoInc     bool
	Ordinal     int
	Comment     string
	MaxLength   int64  // character limit, zero when not applicable
	TypeWarning string // non-empty when the database type was not recognized
}

// ForeignKey records one column-level reference to another table.
type ForeignKey struct {
	Name      string
	Column    string
	RefTable  string
	RefColumn string
}

// Index records one secondary index.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// Table is the validated metadata for one table. Column order matches the
// database column order.
type Table struct {
	Name        string
	Comment     string
	Columns     []*Column
	ForeignKeys []ForeignKey
	Indexes     []Index
}

// PrimaryKey returns the primary-key columns in column order. The slice is
// empty for keyless tables; composite keys return more than one column.
func (t *Table) PrimaryKey() []*Column {
	var pk []*Column
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pk = append(pk, c)
		}
	}
	return pk
}

// NonKeyColumns returns every column that is not part of the primary key,
// preserving column order.
func (t *Table) NonKeyColumns() []*Column {
	var cols []*Column
	for _, c := range t.Columns {
		if !c.PrimaryKey {
			cols = append(cols, c)
		}
	}
	return cols
}

// Normalize validates the raw facts for one table and returns its metadata.
// It fails with an InconsistencyError when the table has no columns, a key
// names a column the column list does not contain, or two columns collapse to
// the same Java field name. Failures are local to the table; batch callers
// collect them and continue.
func Normalize(desc *inspect.TableDesc, rule *naming.Rule) (*Table, error) {
	if rule == nil {
		rule = naming.Default
	}
	if len(desc.Columns) == 0 {
		return nil, NewInconsistencyError(desc.Table.Name, "", "table has no columns")
	}
	t := &Table{
		Name:    desc.Table.Name,
		Comment: desc.Table.Comment,
	}

	byName := make(map[string]*Column, len(desc.Columns))
	byField := make(map[string]string, len(desc.Columns))
	for _, rc := range desc.Columns {
		m := jtype.Map(rc.ColumnType, rc.Nullable, rc.Precision.Int64, rc.Scale.Int64)
		c := &Column{
			Name:        rc.Name,
			FieldName:   rule.Camel(rc.Name),
			JavaType:    m.Java,
			JDBCType:    m.JDBC,
			Import:      m.Import,
			Nullable:    rc.Nullable,
			AutoInc:     rc.AutoInc,
			Ordinal:     rc.Ordinal,
			Comment:     rc.Comment,
			MaxLength:   rc.MaxLength.Int64,
			TypeWarning: m.Warning,
		}
		if prev, ok := byField[c.FieldName]; ok {
			return nil, NewInconsistencyError(t.Name, rc.Name,
				"columns "+prev+" and "+rc.Name+" both normalize to field "+c.FieldName)
		}
		byField[c.FieldName] = rc.Name
		byName[rc.Name] = c
		t.Columns = append(t.Columns, c)
	}

	for _, key := range desc.PrimaryKey {
		c, ok := byName[key]
		if !ok {
			return nil, NewInconsistencyError(t.Name, key, "primary key references unknown column")
		}
		c.PrimaryKey = true
	}
	for _, fk := range desc.ForeignKeys {
		if _, ok := byName[fk.Column]; !ok {
			return nil, NewInconsistencyError(t.Name, fk.Column, "foreign key references unknown column")
		}
		t.ForeignKeys = append(t.ForeignKeys, ForeignKey{
			Name:      fk.Name,
			Column:    fk.Column,
			RefTable:  fk.RefTable,
			RefColumn: fk.RefColumn,
		})
	}
	for _, ix := range desc.Indexes {
		for _, col := range ix.Columns {
			if _, ok := byName[col]; !ok {
				return nil, NewInconsistencyError(t.Name, col, "index "+ix.Name+" references unknown column")
			}
		}
		t.Indexes = append(t.Indexes, Index{Name: ix.Name, Columns: ix.Columns, Unique: ix.Unique})
	}
	return t, nil
}
