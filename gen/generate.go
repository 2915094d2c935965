package gen

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/javagen/dialect/inspect"
	"github.com/syssam/javagen/naming"
	"github.com/syssam/javagen/schema"
)

// Source supplies table metadata to the generator. The inspect.Inspector is
// the production implementation; tests supply fakes.
type Source interface {
	Describe(ctx context.Context, table string) (*inspect.TableDesc, error)
}

// defaultWorkers bounds the per-table fan-out when the caller does not set one.
const defaultWorkers = 4

// Generator renders the full layered skeleton for a set of tables. It holds
// no per-request state and is safe for concurrent use.
type Generator struct {
	source  Source
	engine  *Engine
	rule    *naming.Rule
	workers int
}

// NewGenerator creates a generator over the given metadata source, using the
// compiled-in template sets and the default naming rule.
func NewGenerator(source Source) *Generator {
	return &Generator{
		source:  source,
		engine:  NewEngine(BuiltinLoader()),
		rule:    naming.Default,
		workers: defaultWorkers,
	}
}

// WithEngine overrides the template engine, e.g. to load templates from disk.
func (g *Generator) WithEngine(e *Engine) *Generator {
	g.engine = e
	return g
}

// WithRule overrides the naming rule.
func (g *Generator) WithRule(r *naming.Rule) *Generator {
	g.rule = r
	return g
}

// WithWorkers bounds the number of tables rendered concurrently.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// Request describes one generation call.
type Request struct {
	Tables  []string
	Variant Variant
	Options Options
}

// TableError attributes one failure to the table that caused it. A schema
// failure costs the whole table; a render failure costs one file.
type TableError struct {
	Table string
	Err   error
}

// Result is the outcome of one generation call. Artifacts from healthy
// tables are always present, whatever happened to the others.
type Result struct {
	// Artifacts maps output paths to rendered file contents.
	Artifacts map[string]string
	// Errors lists per-table and per-file failures.
	Errors []TableError
	// Warnings maps table names to type-mapping fallback notes.
	Warnings map[string][]string
	// Collisions lists output paths claimed by more than one table. The
	// first table in sorted order keeps the path.
	Collisions []*CollisionError
	// Cancelled is set when the context expired before all tables finished.
	Cancelled bool
}

type artifact struct {
	path    string
	content string
}

type tableResult struct {
	table    string
	files    []artifact
	errs     []error
	warnings []string
	done     bool
}

// Generate renders every requested table under the requested variant and
// options. Identical inputs produce byte-identical output: tables are
// processed in sorted order and the core never reads the clock.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if len(req.Tables) == 0 {
		return nil, NewRequestError("tables", "no tables requested")
	}
	desc, err := LookupVariant(req.Variant)
	if err != nil {
		return nil, err
	}

	tables := append([]string(nil), req.Tables...)
	sort.Strings(tables)

	slots := make([]tableResult, len(tables))
	var eg errgroup.Group
	eg.SetLimit(g.workers)
	for i, name := range tables {
		i, name := i, name
		eg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			slots[i] = g.generateTable(ctx, name, desc, req.Options)
			return nil
		})
	}
	_ = eg.Wait()

	res := &Result{
		Artifacts: make(map[string]string),
		Warnings:  make(map[string][]string),
	}
	claimed := make(map[string][]string) // path -> claiming tables, merge order
	for _, slot := range slots {
		if !slot.done {
			continue
		}
		for _, err := range slot.errs {
			res.Errors = append(res.Errors, TableError{Table: slot.table, Err: err})
		}
		if len(slot.warnings) > 0 {
			res.Warnings[slot.table] = slot.warnings
		}
		for _, f := range slot.files {
			claimed[f.path] = append(claimed[f.path], slot.table)
			if len(claimed[f.path]) == 1 {
				res.Artifacts[f.path] = f.content
			}
		}
	}
	var paths []string
	for path, owners := range claimed {
		if len(owners) > 1 {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	for _, path := range paths {
		res.Collisions = append(res.Collisions, &CollisionError{
			Path:   path,
			Tables: claimed[path],
		})
	}
	res.Cancelled = ctx.Err() != nil
	return res, nil
}

func (g *Generator) generateTable(ctx context.Context, table string, d *Descriptor, opts Options) tableResult {
	tr := tableResult{table: table, done: true}
	td, err := g.source.Describe(ctx, table)
	if err != nil {
		tr.errs = append(tr.errs, err)
		return tr
	}
	t, err := schema.Normalize(td, g.rule)
	if err != nil {
		tr.errs = append(tr.errs, err)
		return tr
	}
	rctx := BuildContext(t, opts, g.rule)
	tr.warnings = rctx.Warnings
	for _, role := range d.Roles {
		if role.Requires != nil && !role.Requires(opts) {
			continue
		}
		out, err := g.engine.Render(role.Template, rctx)
		if err != nil {
			tr.errs = append(tr.errs, err)
			continue
		}
		tr.files = append(tr.files, artifact{
			path:    role.OutputPath(rctx.ClassName),
			content: out,
		})
	}
	return tr
}

// Analyze normalizes the requested tables without rendering. Bad tables are
// reported alongside the good ones, never instead of them.
func (g *Generator) Analyze(ctx context.Context, tables []string) ([]*schema.Table, []TableError, error) {
	if len(tables) == 0 {
		return nil, nil, NewRequestError("tables", "no tables requested")
	}
	names := append([]string(nil), tables...)
	sort.Strings(names)
	var (
		out  []*schema.Table
		errs []TableError
	)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return out, errs, err
		}
		td, err := g.source.Describe(ctx, name)
		if err != nil {
			errs = append(errs, TableError{Table: name, Err: err})
			continue
		}
		t, err := schema.Normalize(td, g.rule)
		if err != nil {
			errs = append(errs, TableError{Table: name, Err: err})
			continue
		}
		out = append(out, t)
	}
	return out, errs, nil
}
