package gen

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/javagen/dialect/inspect"
	"github.com/syssam/javagen/schema"
)

// fakeSource serves canned table descriptions.
type fakeSource struct {
	tables map[string]*inspect.TableDesc
	errs   map[string]error
}

func (s *fakeSource) Describe(_ context.Context, table string) (*inspect.TableDesc, error) {
	if err, ok := s.errs[table]; ok {
		return nil, err
	}
	desc, ok := s.tables[table]
	if !ok {
		return nil, errors.New("table not found: " + table)
	}
	return desc, nil
}

func userSource() *fakeSource {
	return &fakeSource{tables: map[string]*inspect.TableDesc{
		"user": {
			Table: inspect.Table{Name: "user", Comment: "application users"},
			Columns: []inspect.Column{
				{Name: "id", ColumnType: "int(11)", AutoInc: true, Ordinal: 1},
				{Name: "name", ColumnType: "varchar(50)", MaxLength: sql.NullInt64{Int64: 50, Valid: true}, Ordinal: 2},
				{Name: "age", ColumnType: "tinyint(1)", Nullable: true, Ordinal: 3},
			},
			PrimaryKey: []string{"id"},
		},
	}}
}

func generate(t *testing.T, src Source, req Request) *Result {
	t.Helper()
	res, err := NewGenerator(src).Generate(context.Background(), req)
	require.NoError(t, err)
	return res
}

func TestGenerateMybatisPlus(t *testing.T) {
	res := generate(t, userSource(), Request{
		Tables:  []string{"user"},
		Variant: VariantMybatisPlus,
		Options: Options{Package: "com.example.app", Author: "dev", UseLombok: true},
	})
	require.Empty(t, res.Errors)
	assert.False(t, res.Cancelled)

	entity, ok := res.Artifacts["entity/User.java"]
	require.True(t, ok)
	assert.Contains(t, entity, "package com.example.app.entity;")
	assert.Contains(t, entity, "@Data")
	assert.Contains(t, entity, `@TableName("user")`)
	assert.Contains(t, entity, "@TableId(value = \"id\", type = IdType.AUTO)")
	// tinyint(1) columns come out as Boolean.
	assert.Contains(t, entity, "private Boolean age;")
	// Lombok replaces hand-written accessors.
	assert.NotContains(t, entity, "public String getName()")
	// Swagger was not requested, so no swagger text anywhere.
	assert.NotContains(t, entity, "@Schema")
	assert.NotContains(t, entity, "swagger")

	dao, ok := res.Artifacts["dao/UserDao.java"]
	require.True(t, ok)
	assert.Contains(t, dao, "extends BaseMapper<User>")
	assert.NotContains(t, dao, "insertBatch")

	impl, ok := res.Artifacts["service/impl/UserServiceImpl.java"]
	require.True(t, ok)
	assert.Contains(t, impl, "extends ServiceImpl<UserDao, User>")
	assert.Contains(t, impl, "this.saveBatch(list)")

	// No XML mapper in the plain MybatisPlus variant.
	_, ok = res.Artifacts["mapper/UserDao.xml"]
	assert.False(t, ok)
}

func TestGenerateDefault(t *testing.T) {
	res := generate(t, userSource(), Request{
		Tables:  []string{"user"},
		Variant: VariantDefault,
		Options: Options{Package: "com.example.app"},
	})
	require.Empty(t, res.Errors)

	entity := res.Artifacts["entity/User.java"]
	// No Lombok requested: accessors are generated.
	assert.Contains(t, entity, "public String getName()")
	assert.Contains(t, entity, "public void setName(String name)")
	assert.NotContains(t, entity, "@TableName")

	dao := res.Artifacts["dao/UserDao.java"]
	assert.Contains(t, dao, "int insertBatch(@Param(\"list\") List<User> list);")

	xml, ok := res.Artifacts["mapper/UserDao.xml"]
	require.True(t, ok)
	assert.Contains(t, xml, `<mapper namespace="com.example.app.dao.UserDao">`)
	assert.Contains(t, xml, `<id column="id" property="id" jdbcType="INTEGER"/>`)
	assert.Contains(t, xml, `<foreach collection="list" item="item" separator=",">`)
	// Auto-increment key is excluded from the insert column list.
	assert.Contains(t, xml, "(name, age)")
	assert.Contains(t, xml, "#{item.name}")

	impl := res.Artifacts["service/impl/UserServiceImpl.java"]
	assert.Contains(t, impl, "userDao.insertBatch(list)")
}

func TestGenerateMixed(t *testing.T) {
	res := generate(t, userSource(), Request{
		Tables:  []string{"user"},
		Variant: VariantMybatisPlusMixed,
		Options: Options{Package: "com.example.app"},
	})
	require.Empty(t, res.Errors)

	dao := res.Artifacts["dao/UserDao.java"]
	assert.Contains(t, dao, "extends BaseMapper<User>")
	assert.Contains(t, dao, "int insertBatch(")

	xml, ok := res.Artifacts["mapper/UserDao.xml"]
	require.True(t, ok)
	assert.Contains(t, xml, `<insert id="insertBatch"`)

	impl := res.Artifacts["service/impl/UserServiceImpl.java"]
	assert.Contains(t, impl, "this.baseMapper.insertBatch(list)")
}

func TestGenerateSwagger(t *testing.T) {
	res := generate(t, userSource(), Request{
		Tables:  []string{"user"},
		Variant: VariantDefault,
		Options: Options{Package: "p", UseSwagger: true},
	})
	require.Empty(t, res.Errors)
	entity := res.Artifacts["entity/User.java"]
	assert.Contains(t, entity, "import io.swagger.v3.oas.annotations.media.Schema;")
	assert.Contains(t, entity, `@Schema(description = "application users")`)
	controller := res.Artifacts["controller/UserController.java"]
	assert.Contains(t, controller, "@Tag(name = \"User\"")
	assert.Contains(t, controller, "@Operation(summary")
}

func TestGenerateOptionalLayers(t *testing.T) {
	res := generate(t, userSource(), Request{
		Tables:  []string{"user"},
		Variant: VariantDefault,
		Options: Options{Package: "p", GenerateDTO: true, GenerateVO: true, GenerateMappers: true},
	})
	require.Empty(t, res.Errors)

	dto, ok := res.Artifacts["dto/UserDTO.java"]
	require.True(t, ok)
	// DTOs exclude the key.
	assert.NotContains(t, dto, "private Integer id;")
	assert.Contains(t, dto, "private String name;")

	vo, ok := res.Artifacts["vo/UserVO.java"]
	require.True(t, ok)
	assert.Contains(t, vo, "private Integer id;")

	ms, ok := res.Artifacts["mapper/UserMapper.java"]
	require.True(t, ok)
	assert.Contains(t, ms, `@Mapper(componentModel = "spring")`)
	assert.Contains(t, ms, "User toEntity(UserDTO dto);")
	assert.Contains(t, ms, "UserVO toVO(User entity);")
}

func TestGenerateDeterministic(t *testing.T) {
	req := Request{
		Tables:  []string{"user"},
		Variant: VariantDefault,
		Options: Options{Package: "p", Author: "dev", Date: "2024-01-01", UseLombok: true},
	}
	a := generate(t, userSource(), req)
	b := generate(t, userSource(), req)
	assert.Equal(t, a.Artifacts, b.Artifacts)
}

func TestGenerateEmptyRequest(t *testing.T) {
	_, err := NewGenerator(userSource()).Generate(context.Background(), Request{Variant: VariantDefault})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGenerateUnknownVariant(t *testing.T) {
	_, err := NewGenerator(userSource()).Generate(context.Background(), Request{
		Tables:  []string{"user"},
		Variant: Variant("JPA"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGenerateBadTableDoesNotAbortBatch(t *testing.T) {
	src := userSource()
	src.tables["empty"] = &inspect.TableDesc{Table: inspect.Table{Name: "empty"}}
	res := generate(t, src, Request{
		Tables:  []string{"user", "empty"},
		Variant: VariantDefault,
		Options: Options{Package: "p"},
	})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "empty", res.Errors[0].Table)
	assert.ErrorIs(t, res.Errors[0].Err, schema.ErrInconsistentSchema)
	// The healthy table still generated in full.
	assert.Contains(t, res.Artifacts, "entity/User.java")
	assert.Contains(t, res.Artifacts, "mapper/UserDao.xml")
}

func TestGenerateSourceError(t *testing.T) {
	src := userSource()
	src.errs = map[string]error{"ghost": errors.New("connection lost")}
	res := generate(t, src, Request{
		Tables:  []string{"user", "ghost"},
		Variant: VariantDefault,
		Options: Options{Package: "p"},
	})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "ghost", res.Errors[0].Table)
	assert.Contains(t, res.Artifacts, "entity/User.java")
}

func TestGenerateCollision(t *testing.T) {
	src := userSource()
	// Two table spellings that normalize to the same class name.
	desc := *src.tables["user"]
	desc.Table = inspect.Table{Name: "user__info"}
	src.tables["user__info"] = &desc
	desc2 := *src.tables["user"]
	desc2.Table = inspect.Table{Name: "user_info"}
	src.tables["user_info"] = &desc2

	res := generate(t, src, Request{
		Tables:  []string{"user_info", "user__info"},
		Variant: VariantMybatisPlus,
		Options: Options{Package: "p"},
	})
	require.NotEmpty(t, res.Collisions)
	for _, c := range res.Collisions {
		assert.ErrorIs(t, c, ErrPathCollision)
		assert.ElementsMatch(t, []string{"user__info", "user_info"}, c.Tables)
	}
	// The colliding path holds exactly one artifact, from the first table in
	// sorted order.
	entity, ok := res.Artifacts["entity/UserInfo.java"]
	require.True(t, ok)
	assert.Contains(t, entity, `@TableName("user__info")`)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := NewGenerator(userSource()).Generate(ctx, Request{
		Tables:  []string{"user"},
		Variant: VariantDefault,
		Options: Options{Package: "p"},
	})
	require.NoError(t, err)
	assert.True(t, res.Cancelled)
	assert.Empty(t, res.Artifacts)
}

func TestGenerateKeylessTable(t *testing.T) {
	src := userSource()
	src.tables["log"] = &inspect.TableDesc{
		Table: inspect.Table{Name: "log"},
		Columns: []inspect.Column{
			{Name: "message", ColumnType: "text", Ordinal: 1},
			{Name: "logged_at", ColumnType: "datetime", Nullable: true, Ordinal: 2},
		},
	}
	res := generate(t, src, Request{
		Tables:  []string{"log"},
		Variant: VariantDefault,
		Options: Options{Package: "p"},
	})
	require.Empty(t, res.Errors)
	dao := res.Artifacts["dao/LogDao.java"]
	// No key, no byId operations, but list and insert survive.
	assert.NotContains(t, dao, "selectById")
	assert.NotContains(t, dao, "deleteById")
	assert.Contains(t, dao, "selectAll")
	assert.Contains(t, dao, "int insert(Log log);")
	xml := res.Artifacts["mapper/LogDao.xml"]
	assert.NotContains(t, xml, "updateById")
}
