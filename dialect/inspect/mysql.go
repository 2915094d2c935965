package inspect

import (
	"context"
	"fmt"
	"strings"
)

func (i *Inspector) mysqlTables(ctx context.Context, schema string) ([]Table, error) {
	rows, err := i.query(ctx, `
SELECT TABLE_NAME, IFNULL(TABLE_COMMENT, '')
FROM information_schema.TABLES
WHERE TABLE_SCHEMA = IFNULL(NULLIF(?, ''), DATABASE()) AND TABLE_TYPE = 'BASE TABLE'
ORDER BY TABLE_NAME`, []any{schema})
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

func (i *Inspector) mysqlDatabases(ctx context.Context) ([]string, error) {
	names, err := i.queryNames(ctx, `
SELECT SCHEMA_NAME
FROM information_schema.SCHEMATA
WHERE SCHEMA_NAME NOT IN ('information_schema', 'performance_schema', 'mysql', 'sys')
ORDER BY SCHEMA_NAME`, nil)
	if err != nil {
		return nil, fmt.Errorf("inspect: list databases: %w", err)
	}
	return names, nil
}

func (i *Inspector) mysqlTableExists(ctx context.Context, table string) (bool, error) {
	n, err := i.queryCount(ctx, `
SELECT COUNT(*)
FROM information_schema.TABLES
WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND TABLE_TYPE = 'BASE TABLE'`, []any{table})
	if err != nil {
		return false, fmt.Errorf("inspect: table %q: %w", table, err)
	}
	return n > 0, nil
}

func (i *Inspector) mysqlDescribe(ctx context.Context, table string) (*TableDesc, error) {
	desc := &TableDesc{}
	if err := i.mysqlTable(ctx, table, desc); err != nil {
		return nil, err
	}
	if err := i.mysqlColumns(ctx, table, desc); err != nil {
		return nil, err
	}
	if err := i.mysqlKeys(ctx, table, desc); err != nil {
		return nil, err
	}
	if err := i.mysqlIndexes(ctx, table, desc); err != nil {
		return nil, err
	}
	return desc, nil
}

func (i *Inspector) mysqlTable(ctx context.Context, table string, desc *TableDesc) error {
	rows, err := i.query(ctx, `
SELECT TABLE_NAME, IFNULL(TABLE_COMMENT, '')
FROM information_schema.TABLES
WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`, []any{table})
	if err != nil {
		return fmt.Errorf("inspect: table %q: %w", table, err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("inspect: table %q: %w", table, err)
		}
		return fmt.Errorf("inspect: table %q not found", table)
	}
	if err := rows.Scan(&desc.Table.Name, &desc.Table.Comment); err != nil {
		return fmt.Errorf("inspect: scan table %q: %w", table, err)
	}
	return rows.Err()
}

func (i *Inspector) mysqlColumns(ctx context.Context, table string, desc *TableDesc) error {
	rows, err := i.query(ctx, `
SELECT COLUMN_NAME, DATA_TYPE, COLUMN_TYPE, IS_NULLABLE, COLUMN_DEFAULT,
       IFNULL(COLUMN_COMMENT, ''), NUMERIC_PRECISION, NUMERIC_SCALE,
       CHARACTER_MAXIMUM_LENGTH, IFNULL(EXTRA, ''), ORDINAL_POSITION
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?
ORDER BY ORDINAL_POSITION`, []any{table})
	if err != nil {
		return fmt.Errorf("inspect: columns of %q: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			c        Column
			nullable string
			extra    string
		)
		if err := rows.Scan(&c.Name, &c.DataType, &c.ColumnType, &nullable, &c.Default,
			&c.Comment, &c.Precision, &c.Scale, &c.MaxLength, &extra, &c.Ordinal); err != nil {
			return fmt.Errorf("inspect: scan column of %q: %w", table, err)
		}
		c.Nullable = nullable == "YES"
		c.AutoInc = strings.Contains(strings.ToLower(extra), "auto_increment")
		desc.Columns = append(desc.Columns, c)
	}
	return rows.Err()
}

func (i *Inspector) mysqlKeys(ctx context.Context, table string, desc *TableDesc) error {
	rows, err := i.query(ctx, `
SELECT CONSTRAINT_NAME, COLUMN_NAME, IFNULL(REFERENCED_TABLE_NAME, ''),
       IFNULL(REFERENCED_COLUMN_NAME, '')
FROM information_schema.KEY_COLUMN_USAGE
WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?
ORDER BY CONSTRAINT_NAME, ORDINAL_POSITION`, []any{table})
	if err != nil {
		return fmt.Errorf("inspect: keys of %q: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, column, refTable, refColumn string
		if err := rows.Scan(&name, &column, &refTable, &refColumn); err != nil {
			return fmt.Errorf("inspect: scan key of %q: %w", table, err)
		}
		switch {
		case name == "PRIMARY":
			desc.PrimaryKey = append(desc.PrimaryKey, column)
		case refTable != "":
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

func (i *Inspector) mysqlIndexes(ctx context.Context, table string, desc *TableDesc) error {
	rows, err := i.query(ctx, `
SELECT INDEX_NAME, COLUMN_NAME, NON_UNIQUE
FROM information_schema.STATISTICS
WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND INDEX_NAME <> 'PRIMARY'
ORDER BY INDEX_NAME, SEQ_IN_INDEX`, []any{table})
	if err != nil {
		return fmt.Errorf("inspect: indexes of %q: %w", table, err)
	}
	defer rows.Close()
	byName := make(map[string]int)
	for rows.Next() {
		var (
			name, column string
			nonUnique    int
		)
		if err := rows.Scan(&name, &column, &nonUnique); err != nil {
			return fmt.Errorf("inspect: scan index of %q: %w", table, err)
		}
		if pos, ok := byName[name]; ok {
			desc.Indexes[pos].Columns = append(desc.Indexes[pos].Columns, column)
			continue
		}
		byName[name] = len(desc.Indexes)
		desc.Indexes = append(desc.Indexes, Index{
			Name:    name,
			Columns: []string{column},
			Unique:  nonUnique == 0,
		})
	}
	return rows.Err()
}
