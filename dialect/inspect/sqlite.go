package inspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func (i *Inspector) sqliteTables(ctx context.Context) ([]Table, error) {
	rows, err := i.query(ctx, `
SELECT name FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
ORDER BY name`, nil)
	if err != nil {
		return nil, fmt.Errorf("inspect: list tables: %w", err)
	}
	defer rows.Close()
	var tables []Table
	for rows.Next() {
		var t Table
		if err := rows.Scan(&t.Name); err != nil {
			return nil, fmt.Errorf("inspect: scan table: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func (i *Inspector) sqliteDatabases(ctx context.Context) ([]string, error) {
	rows, err := i.query(ctx, "PRAGMA database_list", nil)
	if err != nil {
		return nil, fmt.Errorf("inspect: list databases: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var (
			seq        int
			name, file sql.NullString
		)
		if err := rows.Scan(&seq, &name, &file); err != nil {
			return nil, fmt.Errorf("inspect: scan database: %w", err)
		}
		if name.Valid {
			names = append(names, name.String)
		}
	}
	return names, rows.Err()
}

func (i *Inspector) sqliteTableExists(ctx context.Context, table string) (bool, error) {
	n, err := i.queryCount(ctx, `
SELECT COUNT(*) FROM sqlite_master
WHERE type = 'table' AND name = ?`, []any{table})
	if err != nil {
		return false, fmt.Errorf("inspect: table %q: %w", table, err)
	}
	return n > 0, nil
}

func (i *Inspector) sqliteDescribe(ctx context.Context, table string) (*TableDesc, error) {
	desc := &TableDesc{Table: Table{Name: table}}
	if err := i.sqliteColumns(ctx, table, desc); err != nil {
		return nil, err
	}
	if len(desc.Columns) == 0 {
		return nil, fmt.Errorf("inspect: table %q not found", table)
	}
	if err := i.sqliteIndexes(ctx, table, desc); err != nil {
		return nil, err
	}
	if err := i.sqliteForeignKeys(ctx, table, desc); err != nil {
		return nil, err
	}
	return desc, nil
}

func (i *Inspector) sqliteColumns(ctx context.Context, table string, desc *TableDesc) error {
	rows, err := i.query(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table), nil)
	if err != nil {
		return fmt.Errorf("inspect: columns of %q: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, typ        string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return fmt.Errorf("inspect: scan column of %q: %w", table, err)
		}
		c := Column{
			Name:       name,
			DataType:   baseSQLiteType(typ),
			ColumnType: typ,
			Nullable:   notNull == 0,
			Default:    dflt,
			Ordinal:    cid + 1,
		}
		desc.Columns = append(desc.Columns, c)
		if pk > 0 {
			desc.PrimaryKey = append(desc.PrimaryKey, name)
			// INTEGER PRIMARY KEY is a rowid alias and auto-increments.
			if strings.EqualFold(c.DataType, "integer") {
				c.AutoInc = true
				desc.Columns[len(desc.Columns)-1] = c
			}
		}
	}
	return rows.Err()
}

func (i *Inspector) sqliteIndexes(ctx context.Context, table string, desc *TableDesc) error {
	rows, err := i.query(ctx, fmt.Sprintf("PRAGMA index_list(%q)", table), nil)
	if err != nil {
		return fmt.Errorf("inspect: indexes of %q: %w", table, err)
	}
	type idx struct {
		name   string
		unique bool
	}
	var list []idx
	for rows.Next() {
		var (
			seq, unique, partial int
			name, origin         string
		)
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			rows.Close()
			return fmt.Errorf("inspect: scan index of %q: %w", table, err)
		}
		if origin == "pk" {
			continue
		}
		list = append(list, idx{name: name, unique: unique == 1})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()
	for _, ix := range list {
		cols, err := i.sqliteIndexColumns(ctx, ix.name)
		if err != nil {
			return err
		}
		desc.Indexes = append(desc.Indexes, Index{Name: ix.name, Columns: cols, Unique: ix.unique})
	}
	return nil
}

func (i *Inspector) sqliteIndexColumns(ctx context.Context, index string) ([]string, error) {
	rows, err := i.query(ctx, fmt.Sprintf("PRAGMA index_info(%q)", index), nil)
	if err != nil {
		return nil, fmt.Errorf("inspect: index %q: %w", index, err)
	}
	defer rows.Close()
	var cols []string
	for rows.Next() {
		var (
			seqno, cid int
			name       sql.NullString
		)
		if err := rows.Scan(&seqno, &cid, &name); err != nil {
			return nil, fmt.Errorf("inspect: scan index %q: %w", index, err)
		}
		if name.Valid {
			cols = append(cols, name.String)
		}
	}
	return cols, rows.Err()
}

func (i *Inspector) sqliteForeignKeys(ctx context.Context, table string, desc *TableDesc) error {
	rows, err := i.query(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%q)", table), nil)
	if err != nil {
		return fmt.Errorf("inspect: foreign keys of %q: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id, seq                            int
			refTable, from, to, onUpd, onDel, m string
		)
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpd, &onDel, &m); err != nil {
			return fmt.Errorf("inspect: scan foreign key of %q: %w", table, err)
		}
		desc.ForeignKeys = append(desc.ForeignKeys, ForeignKey{
			Name:      fmt.Sprintf("fk_%s_%d", table, id),
			Column:    from,
			RefTable:  refTable,
			RefColumn: to,
		})
	}
	return rows.Err()
}

func baseSQLiteType(typ string) string {
	if i := strings.IndexByte(typ, '('); i >= 0 {
		typ = typ[:i]
	}
	return strings.ToLower(strings.TrimSpace(typ))
}
