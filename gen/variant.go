package gen

import "strings"

// FileRole binds one generated-file kind to its template and output path
// within a variant. Roles are data: the catalog below is the authoritative
// answer to "which files exist for this table under this variant and
// option set".
type FileRole struct {
	Name        string // role id: "entity", "dao", "service", ...
	Template    string // template id within the template set
	PathPattern string // output path; {Class} expands to the class name
	Requires    func(Options) bool // nil means always generated
}

// OutputPath expands the role's path pattern for one class name.
func (r FileRole) OutputPath(className string) string {
	return strings.ReplaceAll(r.PathPattern, "{Class}", className)
}

// Descriptor is the ordered file-role list of one variant. Descriptors are
// defined once at process start and shared read-only across requests.
type Descriptor struct {
	Variant Variant
	Roles   []FileRole
}

func requiresDTO(o Options) bool     { return o.GenerateDTO }
func requiresVO(o Options) bool      { return o.GenerateVO }
func requiresMappers(o Options) bool { return o.GenerateMappers }

// sharedRoles are the roles present in every variant, appended after the
// variant-specific layers so file order stays stable.
var sharedRoles = []FileRole{
	{Name: "controller", Template: "common/controller.tmpl", PathPattern: "controller/{Class}Controller.java"},
	{Name: "dto", Template: "common/dto.tmpl", PathPattern: "dto/{Class}DTO.java", Requires: requiresDTO},
	{Name: "vo", Template: "common/vo.tmpl", PathPattern: "vo/{Class}VO.java", Requires: requiresVO},
	{Name: "mapstruct", Template: "common/mapstruct.tmpl", PathPattern: "mapper/{Class}Mapper.java", Requires: requiresMappers},
}

// catalog is the closed three-variant registry. There is no plugin
// mechanism; changing the set means changing this table.
var catalog = map[Variant]*Descriptor{
	VariantDefault: {
		Variant: VariantDefault,
		Roles: append([]FileRole{
			{Name: "entity", Template: "Default/entity.tmpl", PathPattern: "entity/{Class}.java"},
			{Name: "dao", Template: "Default/dao.tmpl", PathPattern: "dao/{Class}Dao.java"},
			{Name: "service", Template: "common/service.tmpl", PathPattern: "service/{Class}Service.java"},
			{Name: "serviceimpl", Template: "Default/serviceimpl.tmpl", PathPattern: "service/impl/{Class}ServiceImpl.java"},
			{Name: "xml", Template: "Default/mapper.xml.tmpl", PathPattern: "mapper/{Class}Dao.xml"},
		}, sharedRoles...),
	},
	VariantMybatisPlus: {
		Variant: VariantMybatisPlus,
		Roles: append([]FileRole{
			{Name: "entity", Template: "MybatisPlus/entity.tmpl", PathPattern: "entity/{Class}.java"},
			{Name: "dao", Template: "MybatisPlus/dao.tmpl", PathPattern: "dao/{Class}Dao.java"},
			{Name: "service", Template: "common/service.tmpl", PathPattern: "service/{Class}Service.java"},
			{Name: "serviceimpl", Template: "MybatisPlus/serviceimpl.tmpl", PathPattern: "service/impl/{Class}ServiceImpl.java"},
		}, sharedRoles...),
	},
	VariantMybatisPlusMixed: {
		Variant: VariantMybatisPlusMixed,
		Roles: append([]FileRole{
			{Name: "entity", Template: "MybatisPlus/entity.tmpl", PathPattern: "entity/{Class}.java"},
			{Name: "dao", Template: "MybatisPlus-Mixed/dao.tmpl", PathPattern: "dao/{Class}Dao.java"},
			{Name: "service", Template: "common/service.tmpl", PathPattern: "service/{Class}Service.java"},
			{Name: "serviceimpl", Template: "MybatisPlus-Mixed/serviceimpl.tmpl", PathPattern: "service/impl/{Class}ServiceImpl.java"},
			{Name: "xml", Template: "MybatisPlus-Mixed/mapper.xml.tmpl", PathPattern: "mapper/{Class}Dao.xml"},
		}, sharedRoles...),
	},
}

// LookupVariant returns the descriptor for a variant identifier.
func LookupVariant(v Variant) (*Descriptor, error) {
	d, ok := catalog[v]
	if !ok {
		return nil, NewRequestError("variant", "unknown variant "+string(v))
	}
	return d, nil
}

// Variants returns the closed variant set in stable order.
func Variants() []Variant {
	return []Variant{VariantDefault, VariantMybatisPlus, VariantMybatisPlusMixed}
}
