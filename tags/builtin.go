package tags

//  ######################################################
//              BUILTIN TAG SET
//  ######################################################

// Builtin returns the builtin tag set in registration order. The doc tag
// comes first so its merge routine runs before any other.
func Builtin() []Tag {
	return []Tag{
		NewDocTag(),
		NewClassTag(),
		NewExtendsTag(),
		NewSingletonTag(),
		NewCfgTag(),
		NewPropertyTag(),
		NewMethodTag(),
		NewEventTag(),
		NewParamTag(),
		NewReturnTag(),
		NewTypeTag(),
		NewDefaultTag(),
		NewSinceTag(),
		NewDeprecatedTag(),
		NewReadonlyTag(),
		NewStaticTag(),
		NewPrivateTag(),
		NewHideTag(),
	}
}

// DefaultRegistry builds a registry holding exactly the builtin tags.
// The builtin set has no pattern collisions, so this never fails.
func DefaultRegistry() *Registry {
	b := NewRegistryBuilder()
	for _, tag := range Builtin() {
		b.MustAdd(tag)
	}
	return b.Build()
}
