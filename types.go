package recmodel

// UnknownPolicy controls how tree leaves that no Value claims are handled
// during LoadModel.
type UnknownPolicy int

const (
	UnknownIgnore UnknownPolicy = iota // Leave unclaimed leaves alone.
	UnknownStrict                      // Reject unclaimed leaves with schema_mismatch.
)

// LoadOpt bundles LoadModel options.
type LoadOpt struct {
	Unknown UnknownPolicy
	// FailFast stops at the first failing Value instead of collecting one
	// issue per Value.
	FailFast bool
}

// ValueOpt configures a Value at declaration time.
type ValueOpt func(*valueConfig)

type valueConfig struct {
	def         any
	hasDef      bool
	allowed     []any
	modelpath   string
	modelunit   string
	unit        string
	description string
}

// Default sets the value returned while the Value is unset. Float defaults may
// be quantity literals such as "1.0 nm".
func Default(v any) ValueOpt {
	return func(c *valueConfig) { c.def, c.hasDef = v, true }
}

// Allowed restricts assignments to the listed values.
func Allowed(vs ...any) ValueOpt {
	return func(c *valueConfig) { c.allowed = append(c.allowed, vs...) }
}

// ModelPath sets the dotted location of the Value below the record's model
// root. It defaults to the Value's name.
func ModelPath(p string) ValueOpt {
	return func(c *valueConfig) { c.modelpath = p }
}

// ModelUnit sets the unit the Value is written in when building the model.
func ModelUnit(u string) ValueOpt {
	return func(c *valueConfig) { c.modelunit = u }
}

// Unit sets the unit the Value is held in memory. It defaults to the model unit.
func Unit(u string) ValueOpt {
	return func(c *valueConfig) { c.unit = u }
}

// Description documents the Value in exported schemas.
func Description(s string) ValueOpt {
	return func(c *valueConfig) { c.description = s }
}
