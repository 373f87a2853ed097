package tags

import (
	"github.com/duckdoc/go-duckdoc/core"
)

// Registry is the immutable catalog of registered tags, indexed by annotation
// pattern, declaration-property pattern, storage key and applicability
// context. It is built once at startup by a RegistryBuilder; no stage may
// mutate it afterwards, so it needs no synchronization.
type Registry struct {
	ordered       []Tag
	byPattern     map[string]Tag
	byDeclPattern map[string]Tag
	byStorageKey  map[string]Tag
	byContext     map[string][]Tag
	memberKinds   map[string]Tag
}

// RegistryBuilder accumulates tag registrations and produces a finished,
// immutable Registry. Conflicts are detected at Add time so startup fails
// fast.
type RegistryBuilder struct {
	ordered       []Tag
	byPattern     map[string]Tag
	byDeclPattern map[string]Tag
}

// NewRegistryBuilder creates an empty registry builder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		byPattern:     make(map[string]Tag),
		byDeclPattern: make(map[string]Tag),
	}
}

// Add registers a tag. Returns a ConflictError when another tag already
// claimed the same annotation pattern or the same declaration pattern.
func (b *RegistryBuilder) Add(tag Tag) error {
	def := tag.Def()
	if _, exists := b.byPattern[def.Pattern]; exists {
		return &core.ConflictError{Field: "pattern", Name: def.Pattern}
	}
	if def.DeclPattern != "" {
		if _, exists := b.byDeclPattern[def.DeclPattern]; exists {
			return &core.ConflictError{Field: "declaration pattern", Name: def.DeclPattern}
		}
		b.byDeclPattern[def.DeclPattern] = tag
	}
	b.byPattern[def.Pattern] = tag
	b.ordered = append(b.ordered, tag)
	return nil
}

// MustAdd is like Add but panics on conflict.
func (b *RegistryBuilder) MustAdd(tag Tag) {
	if err := b.Add(tag); err != nil {
		panic(err)
	}
}

// Build freezes the registrations into an immutable Registry with all lookup
// indexes prepared. Registration order is preserved; it drives merge
// invocation order and render tie-breaking.
func (b *RegistryBuilder) Build() *Registry {
	reg := &Registry{
		ordered:       append([]Tag(nil), b.ordered...),
		byPattern:     make(map[string]Tag, len(b.byPattern)),
		byDeclPattern: make(map[string]Tag, len(b.byDeclPattern)),
		byStorageKey:  make(map[string]Tag),
		byContext:     make(map[string][]Tag),
		memberKinds:   make(map[string]Tag),
	}
	for name, tag := range b.byPattern {
		reg.byPattern[name] = tag
	}
	for _, tag := range reg.ordered {
		def := tag.Def()
		if def.DeclPattern != "" {
			reg.byDeclPattern[def.DeclPattern] = tag
		}
		// The combine owner of a shared storage key is the first
		// registered tag with that key implementing Combine.
		if _, taken := reg.byStorageKey[def.StorageKey]; !taken {
			if _, ok := tag.(Combiner); ok {
				reg.byStorageKey[def.StorageKey] = tag
			}
		}
		if def.MemberKind != "" {
			reg.memberKinds[def.MemberKind] = tag
		}
		for _, ctx := range def.Contexts {
			reg.byContext[string(ctx)] = append(reg.byContext[string(ctx)], tag)
		}
	}
	return reg
}

// ByPattern returns the tag registered for an annotation pattern.
func (r *Registry) ByPattern(pattern string) (Tag, bool) {
	tag, ok := r.byPattern[pattern]
	return tag, ok
}

// ByDeclPattern returns the tag owning a declaration-property pattern.
func (r *Registry) ByDeclPattern(pattern string) (Tag, bool) {
	tag, ok := r.byDeclPattern[pattern]
	return tag, ok
}

// CombineOwner returns the tag whose post-parse routine owns a storage key.
func (r *Registry) CombineOwner(key string) (Combiner, bool) {
	tag, ok := r.byStorageKey[key]
	if !ok {
		return nil, false
	}
	combiner, ok := tag.(Combiner)
	return combiner, ok
}

// MemberKindTag returns the tag that defines the given member kind.
func (r *Registry) MemberKindTag(kind string) (Tag, bool) {
	tag, ok := r.memberKinds[kind]
	return tag, ok
}

// ApplicableTo returns, in registration order, every tag whose contexts
// cover the given record kind: a literal context match, plus the AnyMember
// wildcard for any member kind.
func (r *Registry) ApplicableTo(kind string) []Tag {
	var out []Tag
	for _, tag := range r.ordered {
		if tag.Def().AppliesTo(kind) {
			out = append(out, tag)
		}
	}
	return out
}

// DeclTags returns, in registration order, every tag carrying a declaration
// pattern or a declaration default.
func (r *Registry) DeclTags() []Tag {
	var out []Tag
	for _, tag := range r.ordered {
		def := tag.Def()
		if def.DeclPattern != "" || def.DeclDefault != nil {
			out = append(out, tag)
		}
	}
	return out
}

// All returns every registered tag in registration order.
func (r *Registry) All() []Tag {
	return append([]Tag(nil), r.ordered...)
}

// Len returns the number of registered tags.
func (r *Registry) Len() int {
	return len(r.ordered)
}
