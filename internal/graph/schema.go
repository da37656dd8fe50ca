package graph

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/graph-gophers/graphql-go"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

//go:embed schema.graphql
var schemaSDL string

// SDL returns the schema definition as written.
func SDL() string {
	return schemaSDL
}

// Options tune schema execution.
type Options struct {
	// MaxDepth limits query nesting; zero means unlimited.
	MaxDepth int
}

// NewSchema binds the schema definition to r. The returned schema is
// immutable and safe for concurrent use.
func NewSchema(r *Resolver, opts Options) (*graphql.Schema, error) {
	schemaOpts := []graphql.SchemaOpt{
		graphql.Logger(&panicLogger{log: r.logger().Named("graphql")}),
	}
	if opts.MaxDepth > 0 {
		schemaOpts = append(schemaOpts, graphql.MaxDepth(opts.MaxDepth))
	}

	schema, err := graphql.ParseSchema(schemaSDL, r, schemaOpts...)
	if err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return schema, nil
}

// FormatSchema returns the schema in canonical SDL form.
func FormatSchema() (string, error) {
	s, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: schemaSDL})
	if err != nil {
		return "", fmt.Errorf("loading schema: %w", err)
	}

	var buf bytes.Buffer
	f := formatter.NewFormatter(&buf, formatter.WithIndent("  "))
	f.FormatSchema(s)

	return buf.String(), nil
}
