package inspect

import (
	"context"
	"fmt"
)

func (i *Inspector) postgresTables(ctx context.Context, schema string) ([]Table, error) {
	rows, err := i.query(ctx, `
SELECT c.relname, COALESCE(obj_description(c.oid, 'pg_class'), '')
FROM pg_catalog.pg_class c
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind = 'r' AND n.nspname = COALESCE(NULLIF($1, ''), 'public')
ORDER BY c.relname`, []any{schema})
	if err != nil {
		return nil, fmt.Errorf("inspect: list tables: %w", err)
	}
	defer rows.Close()
	var tables []Table
	for rows.Next() {
		var t Table
		if err := rows.Scan(&t.Name, &t.Comment); err != nil {
			return nil, fmt.Errorf("inspect: scan table: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (i *Inspector) postgresDatabases(ctx context.Context) ([]string, error) {
	names, err := i.queryNames(ctx, `
SELECT datname FROM pg_catalog.pg_database
WHERE NOT datistemplate
ORDER BY datname`, nil)
	if err != nil {
		return nil, fmt.Errorf("inspect: list databases: %w", err)
	}
	return names, nil
}

func (i *Inspector) postgresTableExists(ctx context.Context, table string) (bool, error) {
	n, err := i.queryCount(ctx, `
SELECT COUNT(*)
FROM pg_catalog.pg_class c
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind = 'r' AND n.nspname = 'public' AND c.relname = $1`, []any{table})
	if err != nil {
		return false, fmt.Errorf("inspect: table %q: %w", table, err)
	}
	return n > 0, nil
}

func (i *Inspector) postgresDescribe(ctx context.Context, table string) (*TableDesc, error) {
	desc := &TableDesc{Table: Table{Name: table}}
	rows, err := i.query(ctx, `
SELECT COALESCE(obj_description(c.oid, 'pg_class'), '')
FROM pg_catalog.pg_class c
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind = 'r' AND n.nspname = 'public' AND c.relname = $1`, []any{table})
	if err != nil {
		return nil, fmt.Errorf("inspect: table %q: %w", table, err)
	}
	found := rows.Next()
	if found {
		if err := rows.Scan(&desc.Table.Comment); err != nil {
			rows.Close()
			return nil, fmt.Errorf("inspect: scan table %q: %w", table, err)
		}
	}
	rows.Close()
	if !found {
		return nil, fmt.Errorf("inspect: table %q not found", table)
	}
	if err := i.postgresColumns(ctx, table, desc); err != nil {
		return nil, err
	}
	if err := i.postgresKeys(ctx, table, desc); err != nil {
		return nil, err
	}
	if err := i.postgresIndexes(ctx, table, desc); err != nil {
		return nil, err
	}
	return desc, nil
}

func (i *Inspector) postgresColumns(ctx context.Context, table string, desc *TableDesc) error {
	rows, err := i.query(ctx, `
SELECT c.column_name, c.data_type, c.udt_name, c.is_nullable, c.column_default,
       COALESCE(col_description(pc.oid, c.ordinal_position), ''),
       c.numeric_precision, c.numeric_scale, c.character_maximum_length,
       c.ordinal_position
FROM information_schema.columns c
JOIN pg_catalog.pg_class pc ON pc.relname = c.table_name
JOIN pg_catalog.pg_namespace n ON n.oid = pc.relnamespace AND n.nspname = c.table_schema
WHERE c.table_schema = 'public' AND c.table_name = $1
ORDER BY c.ordinal_position`, []any{table})
	if err != nil {
		return fmt.Errorf("inspect: columns of %q: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			c        Column
			nullable string
		)
		if err := rows.Scan(&c.Name, &c.DataType, &c.ColumnType, &nullable, &c.Default,
			&c.Comment, &c.Precision, &c.Scale, &c.MaxLength, &c.Ordinal); err != nil {
			return fmt.Errorf("inspect: scan column of %q: %w", table, err)
		}
		c.Nullable = nullable == "YES"
		// Serial columns carry a nextval() default rather than an extra flag.
		c.AutoInc = c.Default.Valid && len(c.Default.String) > 8 && c.Default.String[:8] == "nextval("
		desc.Columns = append(desc.Columns, c)
	}
	return rows.Err()
}

func (i *Inspector) postgresKeys(ctx context.Context, table string, desc *TableDesc) error {
	rows, err := i.query(ctx, `
SELECT tc.constraint_name, tc.constraint_type, kcu.column_name,
       COALESCE(ccu.table_name, ''), COALESCE(ccu.column_name, '')
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
LEFT JOIN information_schema.constraint_column_usage ccu
  ON ccu.constraint_name = tc.constraint_name
 AND ccu.table_schema = tc.table_schema
 AND tc.constraint_type = 'FOREIGN KEY'
WHERE tc.table_schema = 'public' AND tc.table_name = $1
  AND tc.constraint_type IN ('PRIMARY KEY', 'FOREIGN KEY')
ORDER BY tc.constraint_name, kcu.ordinal_position`, []any{table})
	if err != nil {
		return fmt.Errorf("inspect: keys of %q: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, kind, column, refTable, refColumn string
		if err := rows.Scan(&name, &kind, &column, &refTable, &refColumn); err != nil {
			return fmt.Errorf("inspect: scan key of %q: %w", table, err)
		}
		switch kind {
		case "PRIMARY KEY":
			desc.PrimaryKey = append(desc.PrimaryKey, column)
		case "FOREIGN KEY":
			desc.ForeignKeys = append(desc.ForeignKeys, ForeignKey{
				Name:      name,
				Column:    column,
				RefTable:  refTable,
				RefColumn: refColumn,
			})
		}
	}
	return rows.Err()
}

func (i *Inspector) postgresIndexes(ctx context.Context, table string, desc *TableDesc) error {
	rows, err := i.query(ctx, `
SELECT ic.relname, a.attname, ix.indisunique
FROM pg_catalog.pg_index ix
JOIN pg_catalog.pg_class ic ON ic.oid = ix.indexrelid
JOIN pg_catalog.pg_class tc ON tc.oid = ix.indrelid
JOIN pg_catalog.pg_namespace n ON n.oid = tc.relnamespace
JOIN pg_catalog.pg_attribute a ON a.attrelid = tc.oid AND a.attnum = ANY(ix.indkey)
WHERE n.nspname = 'public' AND tc.relname = $1 AND NOT ix.indisprimary
ORDER BY ic.relname, a.attnum`, []any{table})
	if err != nil {
		return fmt.Errorf("inspect: indexes of %q: %w", table, err)
	}
	defer rows.Close()
	byName := make(map[string]int)
	for rows.Next() {
		var (
			name, column string
			unique       bool
		)
		if err := rows.Scan(&name, &column, &unique); err != nil {
			return fmt.Errorf("inspect: scan index of %q: %w", table, err)
		}
		if pos, ok := byName[name]; ok {
			desc.Indexes[pos].Columns = append(desc.Indexes[pos].Columns, column)
			continue
		}
		byName[name] = len(desc.Indexes)
		desc.Indexes = append(desc.Indexes, Index{Name: name, Columns: []string{column}, Unique: unique})
	}
	return rows.Err()
}
