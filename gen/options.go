// Package gen renders the layered Java source skeleton for one or more
// tables. It owns the rendering context, the closed variant catalog, the
// template engine, and the orchestrator that drives them.
package gen

// Variant selects one of the three fixed template sets. The set is closed;
// adding a variant means adding a catalog entry, not a new type.
type Variant string

// The supported variants.
const (
	// VariantDefault generates plain MyBatis code with an XML mapper file.
	VariantDefault Variant = "Default"
	// VariantMybatisPlus generates MyBatis-Plus code; the DAO extends
	// BaseMapper and no XML mapper file is emitted.
	VariantMybatisPlus Variant = "MybatisPlus"
	// VariantMybatisPlusMixed generates MyBatis-Plus code plus an XML mapper
	// file carrying the hand-written batch statements.
	VariantMybatisPlusMixed Variant = "MybatisPlus-Mixed"
)

// ParseVariant validates a variant identifier received from a caller.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantDefault, VariantMybatisPlus, VariantMybatisPlusMixed:
		return v, nil
	default:
		return "", NewRequestError("variant", "unknown variant "+s)
	}
}

// Options are the request-level generation options. Every boolean surfaces
// in the rendering context as an explicit flag; templates never infer them.
type Options struct {
	Package         string // base Java package, e.g. "com.example.app"
	Author          string
	Date            string // emitted verbatim; the core never reads the clock
	UseLombok       bool
	UseSwagger      bool
	GenerateDTO     bool
	GenerateVO      bool
	GenerateMappers bool
}
