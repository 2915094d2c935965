package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/javagen/schema"
)

func userTable() *schema.Table {
	return &schema.Table{
		Name:    "user_info",
		Comment: "registered users",
		Columns: []*schema.Column{
			{Name: "id", FieldName: "id", JavaType: "Long", JDBCType: "BIGINT", PrimaryKey: true, AutoInc: true, Ordinal: 1},
			{Name: "user_name", FieldName: "userName", JavaType: "String", JDBCType: "VARCHAR", MaxLength: 50, Comment: "login name", Ordinal: 2},
			{Name: "balance", FieldName: "balance", JavaType: "BigDecimal", JDBCType: "DECIMAL", Import: "java.math.BigDecimal", Nullable: true, Ordinal: 3},
			{Name: "created_at", FieldName: "createdAt", JavaType: "LocalDateTime", JDBCType: "TIMESTAMP", Import: "java.time.LocalDateTime", Nullable: true, Ordinal: 4},
		},
	}
}

func TestBuildContext(t *testing.T) {
	ctx := BuildContext(userTable(), Options{Package: "com.example.app", Author: "dev"}, nil)

	assert.Equal(t, "UserInfo", ctx.ClassName)
	assert.Equal(t, "userInfo", ctx.VarName)
	assert.Equal(t, "user_info", ctx.TableName)
	assert.Equal(t, "com.example.app.entity", ctx.Packages.Entity)
	assert.Equal(t, "com.example.app.service.impl", ctx.Packages.ServiceImpl)

	require.True(t, ctx.HasPrimaryKey)
	assert.False(t, ctx.CompositeKey)
	assert.Equal(t, "id", ctx.PrimaryKey.FieldName)

	// Every column is either key or non-key, in order.
	assert.Len(t, ctx.Columns, 4)
	assert.Len(t, ctx.PrimaryKeys, 1)
	assert.Len(t, ctx.OtherColumns, 3)
	assert.Equal(t, len(ctx.Columns), len(ctx.PrimaryKeys)+len(ctx.OtherColumns))
	assert.Equal(t, "userName", ctx.OtherColumns[0].FieldName)

	// Auto-increment columns are excluded from inserts.
	assert.Len(t, ctx.InsertColumns, 3)

	// Imports are sorted and de-duplicated.
	assert.Equal(t, []string{"java.math.BigDecimal", "java.time.LocalDateTime"}, ctx.Imports)

	// Option-gated sections are nil when the options are off.
	assert.Nil(t, ctx.Lombok)
	assert.Nil(t, ctx.Swagger)
	assert.Nil(t, ctx.DTO)
	assert.Nil(t, ctx.VO)
	assert.Nil(t, ctx.MapStruct)

	// The last column is marked for separator handling.
	assert.True(t, ctx.Columns[3].Last)
	assert.False(t, ctx.Columns[0].Last)
}

func TestBuildContextLombok(t *testing.T) {
	ctx := BuildContext(userTable(), Options{Package: "p", UseLombok: true}, nil)
	require.NotNil(t, ctx.Lombok)
	assert.Contains(t, ctx.Lombok.Annotations, "@Data")
	assert.Contains(t, ctx.Lombok.Imports, "lombok.Data")
}

func TestBuildContextSwagger(t *testing.T) {
	ctx := BuildContext(userTable(), Options{Package: "p", UseSwagger: true}, nil)
	require.NotNil(t, ctx.Swagger)
	assert.Contains(t, ctx.Swagger.Model, "registered users")
	assert.Contains(t, ctx.Swagger.Fields["userName"], "login name")
	// Columns without a comment fall back to the column name.
	assert.Contains(t, ctx.Swagger.Fields["balance"], "balance")
	for _, op := range []string{"list", "get", "create", "createBatch", "update", "delete"} {
		assert.Contains(t, ctx.Swagger.Operations, op)
	}
}

func TestBuildContextShapes(t *testing.T) {
	ctx := BuildContext(userTable(), Options{
		Package:         "p",
		GenerateDTO:     true,
		GenerateVO:      true,
		GenerateMappers: true,
	}, nil)

	require.NotNil(t, ctx.DTO)
	assert.Equal(t, "UserInfoDTO", ctx.DTO.ClassName)
	// DTOs exclude key columns; VOs carry every column.
	assert.Len(t, ctx.DTO.Columns, 3)
	require.NotNil(t, ctx.VO)
	assert.Equal(t, "UserInfoVO", ctx.VO.ClassName)
	assert.Len(t, ctx.VO.Columns, 4)

	require.NotNil(t, ctx.MapStruct)
	assert.Equal(t, "UserInfoMapper", ctx.MapStruct.ClassName)
	assert.Contains(t, ctx.MapStruct.Imports, "p.dto.UserInfoDTO")
	assert.Contains(t, ctx.MapStruct.Imports, "p.vo.UserInfoVO")
}

func TestBuildContextKeyless(t *testing.T) {
	table := userTable()
	table.Columns[0].PrimaryKey = false
	ctx := BuildContext(table, Options{Package: "p"}, nil)
	assert.False(t, ctx.HasPrimaryKey)
	assert.Nil(t, ctx.PrimaryKey)
	assert.Len(t, ctx.OtherColumns, 4)
}

func TestBuildContextCompositeKey(t *testing.T) {
	table := userTable()
	table.Columns[1].PrimaryKey = true
	ctx := BuildContext(table, Options{Package: "p"}, nil)
	assert.True(t, ctx.CompositeKey)
	assert.Len(t, ctx.PrimaryKeys, 2)
	// The first key column in column order represents the table for byId paths.
	assert.Equal(t, "id", ctx.PrimaryKey.FieldName)
}

func TestBuildContextWarnings(t *testing.T) {
	table := userTable()
	table.Columns[2].TypeWarning = "unrecognized database type geometry, mapped to String"
	ctx := BuildContext(table, Options{Package: "p"}, nil)
	require.Len(t, ctx.Warnings, 1)
	assert.Contains(t, ctx.Warnings[0], "balance")
}

func TestBuildContextDeterministic(t *testing.T) {
	opts := Options{Package: "p", UseLombok: true, UseSwagger: true, GenerateDTO: true}
	a := BuildContext(userTable(), opts, nil)
	b := BuildContext(userTable(), opts, nil)
	assert.Equal(t, a, b)
}
