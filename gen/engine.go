package gen

import (
	"bytes"
	"io/fs"
	"regexp"
	"strings"
	"sync"
	"text/template"
)

// Loader resolves a template id to its source text.
type Loader interface {
	Load(id string) (string, error)
}

// FSLoader loads templates from a file system, typically an embedded one.
// Template ids are slash-separated paths relative to the root.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a loader over the given file system.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// Load implements Loader.
func (l *FSLoader) Load(id string) (string, error) {
	buf, err := fs.ReadFile(l.fsys, id)
	if err != nil {
		return "", NewRenderError(id, "", err)
	}
	return string(buf), nil
}

// Engine parses and executes templates. Parsed templates are cached per id,
// so repeated renders across tables pay the parse cost once. The engine is
// safe for concurrent use.
type Engine struct {
	loader Loader

	mu    sync.Mutex
	cache map[string]*template.Template
}

// NewEngine creates an engine over the given loader.
func NewEngine(loader Loader) *Engine {
	return &Engine{
		loader: loader,
		cache:  make(map[string]*template.Template),
	}
}

// funcs are the helper functions available inside templates.
var funcs = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
}

// Render executes the template against the context. Any missing or nil
// context value fails the render; a partial file is never returned.
func (e *Engine) Render(id string, ctx *Context) (string, error) {
	tmpl, err := e.parse(id)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", NewRenderError(id, renderVariable(err), err)
	}
	return buf.String(), nil
}

func (e *Engine) parse(id string) (*template.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[id]; ok {
		return tmpl, nil
	}
	src, err := e.loader.Load(id)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(id).
		Funcs(funcs).
		Option("missingkey=error").
		Parse(src)
	if err != nil {
		return nil, NewRenderError(id, "", err)
	}
	e.cache[id] = tmpl
	return tmpl, nil
}

// variableRe extracts the offending expression from a text/template
// execution error, which reports it as `executing ... at <.X.Y>: ...`.
var variableRe = regexp.MustCompile(`at <([^>]+)>`)

func renderVariable(err error) string {
	m := variableRe.FindStringSubmatch(err.Error())
	if m == nil {
		return ""
	}
	return m[1]
}
