package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roleNames(d *Descriptor, opts Options) []string {
	var names []string
	for _, r := range d.Roles {
		if r.Requires != nil && !r.Requires(opts) {
			continue
		}
		names = append(names, r.Name)
	}
	return names
}

func TestParseVariant(t *testing.T) {
	for _, v := range Variants() {
		parsed, err := ParseVariant(string(v))
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}
	_, err := ParseVariant("Hibernate")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.True(t, IsRequestError(err))
}

func TestVariantCatalog(t *testing.T) {
	t.Run("default has xml mapper", func(t *testing.T) {
		d, err := LookupVariant(VariantDefault)
		require.NoError(t, err)
		assert.Contains(t, roleNames(d, Options{}), "xml")
	})
	t.Run("mybatisplus has no xml mapper", func(t *testing.T) {
		d, err := LookupVariant(VariantMybatisPlus)
		require.NoError(t, err)
		assert.NotContains(t, roleNames(d, Options{}), "xml")
	})
	t.Run("mixed has xml mapper", func(t *testing.T) {
		d, err := LookupVariant(VariantMybatisPlusMixed)
		require.NoError(t, err)
		assert.Contains(t, roleNames(d, Options{}), "xml")
	})
	t.Run("mixed reuses the mybatisplus entity", func(t *testing.T) {
		mp, err := LookupVariant(VariantMybatisPlus)
		require.NoError(t, err)
		mixed, err := LookupVariant(VariantMybatisPlusMixed)
		require.NoError(t, err)
		assert.Equal(t, mp.Roles[0].Template, mixed.Roles[0].Template)
	})
	t.Run("every variant has the base layers", func(t *testing.T) {
		for _, v := range Variants() {
			d, err := LookupVariant(v)
			require.NoError(t, err)
			names := roleNames(d, Options{})
			for _, want := range []string{"entity", "dao", "service", "serviceimpl", "controller"} {
				assert.Contains(t, names, want, "variant %s", v)
			}
		}
	})
	t.Run("unknown variant", func(t *testing.T) {
		_, err := LookupVariant(Variant("JPA"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestOptionalRoles(t *testing.T) {
	d, err := LookupVariant(VariantDefault)
	require.NoError(t, err)

	base := roleNames(d, Options{})
	assert.NotContains(t, base, "dto")
	assert.NotContains(t, base, "vo")
	assert.NotContains(t, base, "mapstruct")

	all := roleNames(d, Options{GenerateDTO: true, GenerateVO: true, GenerateMappers: true})
	assert.Contains(t, all, "dto")
	assert.Contains(t, all, "vo")
	assert.Contains(t, all, "mapstruct")
}

func TestOutputPath(t *testing.T) {
	r := FileRole{PathPattern: "service/impl/{Class}ServiceImpl.java"}
	assert.Equal(t, "service/impl/UserServiceImpl.java", r.OutputPath("User"))
}
