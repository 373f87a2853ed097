package duckdoc

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/duckdoc/go-duckdoc/core"
	"github.com/duckdoc/go-duckdoc/format"
	"github.com/duckdoc/go-duckdoc/pipeline"
	"github.com/duckdoc/go-duckdoc/tags"
)

//  ######################################################
//              PROCESSOR FACADE
//  ######################################################

// Unit is one documentation comment plus the structural facts of the
// declaration it precedes. Decl may be nil when the comment is detached.
type Unit struct {
	// Comment is the raw comment text, delimiters included.
	Comment string
	// Decl holds the declaration's configuration literal, keyed by
	// property name.
	Decl core.ConfigLiteral
	// Kind optionally forces the record kind; when empty it is resolved
	// from the comment's annotations.
	Kind string
	// Pos is the comment's source position, used in every warning the
	// unit produces.
	Pos core.Position
}

// Result is the finished outcome for one unit: the merged record, its
// rendered page fragment and everything non-fatal that went wrong along the
// way.
type Result struct {
	Record   core.Record
	HTML     string
	Pos      core.Position
	Warnings []core.Warning
	// Incomplete marks that a merge routine failed; the record is still
	// returned with whatever fields survived.
	Incomplete bool
}

// Processor runs documentation units through the full chain: comment
// parsing, fragment combination, declaration extraction, merging and ordered
// rendering. A Processor is immutable after New and safe for concurrent use.
//
// Example usage:
//
//	proc, err := duckdoc.New(&duckdoc.Config{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := proc.Process(ctx, duckdoc.Unit{
//		Comment: "/** @class Ext.Panel */",
//		Pos:     core.Position{Filename: "panel.js", Line: 1},
//	})
type Processor struct {
	config   *Config
	registry *tags.Registry
	pipe     *pipeline.Pipeline
}

// New creates a Processor from the given config. Defaults are applied for
// every unset field; a tag pattern collision is returned as a ConflictError.
func New(config *Config) (*Processor, error) {
	if config == nil {
		config = &Config{}
	}
	config.Validate(
		withTags,
		withFormatter(format.Plain{}),
		withMaxWorkers,
	)
	builder := tags.NewRegistryBuilder()
	for _, tag := range config.Tags {
		if err := builder.Add(tag); err != nil {
			return nil, err
		}
	}
	for _, tag := range config.ExtraTags {
		if err := builder.Add(tag); err != nil {
			return nil, err
		}
	}
	registry := builder.Build()
	return &Processor{
		config:   config,
		registry: registry,
		pipe: &pipeline.Pipeline{
			Registry:  registry,
			Formatter: config.Formatter,
		},
	}, nil
}

// Registry exposes the processor's immutable tag registry.
func (p *Processor) Registry() *tags.Registry {
	return p.registry
}

// Process runs one unit through the chain. Recoverable problems (unknown
// annotations, malformed fragments, schema violations, merge failures) never
// return an error; they surface as warnings on the Result. The returned
// error is reserved for rendering failures and context cancellation.
func (p *Processor) Process(ctx context.Context, unit Unit) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := &Result{Record: core.Record{}, Pos: unit.Pos}

	parsed, warns := p.pipe.ParseComment(unit.Comment, unit.Pos)
	res.Warnings = append(res.Warnings, warns...)

	kind := p.pipe.ResolveKind(unit.Kind, parsed.Frags)

	warns = p.pipe.Combine(res.Record, parsed)
	res.Warnings = append(res.Warnings, warns...)

	facts, warns := p.pipe.ExtractDecl(unit.Decl, kind)
	res.Warnings = append(res.Warnings, warns...)

	incomplete, warns := p.pipe.Merge(res.Record, kind, parsed, facts)
	res.Warnings = append(res.Warnings, warns...)
	res.Incomplete = incomplete

	html, err := p.pipe.Render(res.Record)
	if err != nil {
		return nil, err
	}
	res.HTML = html
	return res, nil
}

// ProcessAll runs every unit through the chain, up to MaxWorkers at a time.
// Results come back in input order. The first hard failure cancels the
// remaining work.
func (p *Processor) ProcessAll(ctx context.Context, units []Unit) ([]*Result, error) {
	results := make([]*Result, len(units))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(p.config.MaxWorkers)
	for i, unit := range units {
		i, unit := i, unit
		group.Go(func() error {
			res, err := p.Process(ctx, unit)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
