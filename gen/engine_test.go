package gen

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(files map[string]string) *Engine {
	fsys := fstest.MapFS{}
	for name, src := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(src)}
	}
	return NewEngine(NewFSLoader(fsys))
}

func TestRender(t *testing.T) {
	e := testEngine(map[string]string{
		"entity.tmpl": "class {{.ClassName}} // {{.TableComment}}",
	})
	ctx := BuildContext(userTable(), Options{Package: "p"}, nil)
	out, err := e.Render("entity.tmpl", ctx)
	require.NoError(t, err)
	assert.Equal(t, "class UserInfo // registered users", out)
}

func TestRenderMissingTemplate(t *testing.T) {
	e := testEngine(nil)
	_, err := e.Render("nope.tmpl", BuildContext(userTable(), Options{}, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRenderFailed)
}

func TestRenderDisabledSectionFails(t *testing.T) {
	// A template reaching into an option section without its option set must
	// fail the render, not emit partial or wrong output.
	e := testEngine(map[string]string{
		"bad.tmpl": "{{.Swagger.Model}}",
	})
	ctx := BuildContext(userTable(), Options{Package: "p"}, nil)
	require.Nil(t, ctx.Swagger)

	_, err := e.Render("bad.tmpl", ctx)
	require.Error(t, err)
	assert.True(t, IsRenderError(err))

	var re *RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "bad.tmpl", re.Template)
	assert.Equal(t, ".Swagger.Model", re.Variable)
}

func TestRenderGuardedSectionSkips(t *testing.T) {
	// The same reference guarded by the option flag renders cleanly.
	e := testEngine(map[string]string{
		"ok.tmpl": "{{if .UseSwagger}}{{.Swagger.Model}}{{end}}done",
	})
	ctx := BuildContext(userTable(), Options{Package: "p"}, nil)
	out, err := e.Render("ok.tmpl", ctx)
	require.NoError(t, err)
	assert.Equal(t, "done", out)
}

func TestRenderMissingMapKey(t *testing.T) {
	e := testEngine(map[string]string{
		"op.tmpl": `{{index .Swagger.Operations "archive"}}`,
	})
	ctx := BuildContext(userTable(), Options{Package: "p", UseSwagger: true}, nil)
	out, err := e.Render("op.tmpl", ctx)
	// index on a present map with an absent key yields the zero value; the
	// engine's contract is about absent context sections, not map lookups.
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRenderParseError(t *testing.T) {
	e := testEngine(map[string]string{
		"broken.tmpl": "{{.ClassName",
	})
	_, err := e.Render("broken.tmpl", BuildContext(userTable(), Options{}, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRenderFailed)
}

func TestBuiltinTemplatesLoad(t *testing.T) {
	loader := BuiltinLoader()
	for _, v := range Variants() {
		d, err := LookupVariant(v)
		require.NoError(t, err)
		for _, role := range d.Roles {
			src, err := loader.Load(role.Template)
			require.NoError(t, err, "template %s", role.Template)
			assert.NotEmpty(t, src)
		}
	}
}
