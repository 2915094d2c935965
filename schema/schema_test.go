package schema

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/javagen/dialect/inspect"
)

func userDesc() *inspect.TableDesc {
	return &inspect.TableDesc{
		Table: inspect.Table{Name: "user_info", Comment: "registered users"},
		Columns: []inspect.Column{
			{Name: "id", DataType: "int", ColumnType: "int(11)", AutoInc: true, Ordinal: 1},
			{Name: "user_name", DataType: "varchar", ColumnType: "varchar(50)", MaxLength: sql.NullInt64{Int64: 50, Valid: true}, Comment: "login name", Ordinal: 2},
			{Name: "is_active", DataType: "tinyint", ColumnType: "tinyint(1)", Nullable: true, Ordinal: 3},
			{Name: "balance", DataType: "decimal", ColumnType: "decimal(10,2)", Nullable: true, Ordinal: 4},
		},
		PrimaryKey: []string{"id"},
		Indexes: []inspect.Index{
			{Name: "idx_user_name", Columns: []string{"user_name"}, Unique: true},
		},
		ForeignKeys: []inspect.ForeignKey{
			{Name: "fk_user_group", Column: "id", RefTable: "user_group", RefColumn: "user_id"},
		},
	}
}

func TestNormalize(t *testing.T) {
	table, err := Normalize(userDesc(), nil)
	require.NoError(t, err)
	assert.Equal(t, "user_info", table.Name)
	assert.Equal(t, "registered users", table.Comment)
	require.Len(t, table.Columns, 4)

	id := table.Columns[0]
	assert.Equal(t, "id", id.FieldName)
	assert.Equal(t, "Integer", id.JavaType)
	assert.True(t, id.PrimaryKey)
	assert.True(t, id.AutoInc)

	name := table.Columns[1]
	assert.Equal(t, "userName", name.FieldName)
	assert.Equal(t, "String", name.JavaType)
	assert.Equal(t, int64(50), name.MaxLength)

	active := table.Columns[2]
	assert.Equal(t, "isActive", active.FieldName)
	assert.Equal(t, "Boolean", active.JavaType)

	balance := table.Columns[3]
	assert.Equal(t, "BigDecimal", balance.JavaType)
	assert.Equal(t, "java.math.BigDecimal", balance.Import)

	require.Len(t, table.PrimaryKey(), 1)
	assert.Len(t, table.NonKeyColumns(), 3)
	require.Len(t, table.Indexes, 1)
	assert.True(t, table.Indexes[0].Unique)
	require.Len(t, table.ForeignKeys, 1)
	assert.Equal(t, "user_group", table.ForeignKeys[0].RefTable)
}

func TestNormalizeNoColumns(t *testing.T) {
	_, err := Normalize(&inspect.TableDesc{Table: inspect.Table{Name: "empty"}}, nil)
	require.Error(t, err)
	assert.True(t, IsInconsistencyError(err))
	assert.ErrorIs(t, err, ErrInconsistentSchema)
}

func TestNormalizeFieldCollision(t *testing.T) {
	desc := &inspect.TableDesc{
		Table: inspect.Table{Name: "t"},
		Columns: []inspect.Column{
			{Name: "user_name", ColumnType: "varchar(10)", Ordinal: 1},
			{Name: "userName", ColumnType: "varchar(10)", Ordinal: 2},
		},
	}
	_, err := Normalize(desc, nil)
	require.Error(t, err)
	assert.True(t, IsInconsistencyError(err))
	assert.Contains(t, err.Error(), "userName")
}

func TestNormalizeUnknownKeyColumn(t *testing.T) {
	desc := userDesc()
	desc.PrimaryKey = []string{"missing"}
	_, err := Normalize(desc, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInconsistentSchema)
	assert.Contains(t, err.Error(), "primary key")
}

func TestNormalizeUnknownIndexColumn(t *testing.T) {
	desc := userDesc()
	desc.Indexes = append(desc.Indexes, inspect.Index{Name: "idx_bad", Columns: []string{"missing"}})
	_, err := Normalize(desc, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInconsistentSchema)
	assert.Contains(t, err.Error(), "idx_bad")
}

func TestNormalizeUnknownForeignKeyColumn(t *testing.T) {
	desc := userDesc()
	desc.ForeignKeys = append(desc.ForeignKeys, inspect.ForeignKey{Name: "fk_bad", Column: "missing"})
	_, err := Normalize(desc, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInconsistentSchema)
}

func TestNormalizeKeylessTable(t *testing.T) {
	desc := userDesc()
	desc.PrimaryKey = nil
	table, err := Normalize(desc, nil)
	require.NoError(t, err)
	assert.Empty(t, table.PrimaryKey())
	assert.Len(t, table.NonKeyColumns(), 4)
}

func TestNormalizeTypeWarning(t *testing.T) {
	desc := &inspect.TableDesc{
		Table: inspect.Table{Name: "t"},
		Columns: []inspect.Column{
			{Name: "shape", ColumnType: "geometry", Ordinal: 1},
		},
	}
	table, err := Normalize(desc, nil)
	require.NoError(t, err)
	assert.Equal(t, "String", table.Columns[0].JavaType)
	assert.Contains(t, table.Columns[0].TypeWarning, "geometry")
}
