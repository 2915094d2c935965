package manifest

import (
	"github.com/syssam/javagen/dialect"
	"github.com/syssam/javagen/gen"
)

// Coordinate identifies one Maven artifact.
type Coordinate struct {
	GroupID    string
	ArtifactID string
}

// Requirement is one dependency the generated code needs, with the minimum
// version it was written against.
type Requirement struct {
	Coordinate
	Version  string
	Scope    string
	Optional bool
	Reason   string // human-readable origin, e.g. "variant MybatisPlus"
}

// Pinned catalog versions. These track the library versions the templates
// generate code for.
const (
	mybatisVersion        = "3.5.16"
	mybatisStarterVersion = "3.0.4"
	mybatisPlusVersion    = "3.5.7"
	lombokVersion         = "1.18.36"
	mapstructVersion      = "1.6.3"
	springdocVersion      = "2.7.0"
	mysqlDriverVersion    = "8.4.0"
	postgresDriverVersion = "42.7.4"
	sqliteDriverVersion   = "3.46.1.3"
)

// Required returns the dependency set implied by a variant, option set and
// database dialect. The result is in a stable order.
func Required(variant gen.Variant, opts gen.Options, dbDialect string) []Requirement {
	var reqs []Requirement

	switch variant {
	case gen.VariantMybatisPlus, gen.VariantMybatisPlusMixed:
		reqs = append(reqs, Requirement{
			Coordinate: Coordinate{GroupID: "com.baomidou", ArtifactID: "mybatis-plus-spring-boot3-starter"},
			Version:    mybatisPlusVersion,
			Reason:     "variant " + string(variant),
		})
	default:
		reqs = append(reqs,
			Requirement{
				Coordinate: Coordinate{GroupID: "org.mybatis.spring.boot", ArtifactID: "mybatis-spring-boot-starter"},
				Version:    mybatisStarterVersion,
				Reason:     "variant " + string(gen.VariantDefault),
			},
			Requirement{
				Coordinate: Coordinate{GroupID: "org.mybatis", ArtifactID: "mybatis"},
				Version:    mybatisVersion,
				Reason:     "variant " + string(gen.VariantDefault),
			},
		)
	}

	switch dbDialect {
	case dialect.MySQL:
		reqs = append(reqs, Requirement{
			Coordinate: Coordinate{GroupID: "com.mysql", ArtifactID: "mysql-connector-j"},
			Version:    mysqlDriverVersion,
			Scope:      "runtime",
			Reason:     "mysql connectivity",
		})
	case dialect.Postgres:
		reqs = append(reqs, Requirement{
			Coordinate: Coordinate{GroupID: "org.postgresql", ArtifactID: "postgresql"},
			Version:    postgresDriverVersion,
			Scope:      "runtime",
			Reason:     "postgres connectivity",
		})
	case dialect.SQLite:
		reqs = append(reqs, Requirement{
			Coordinate: Coordinate{GroupID: "org.xerial", ArtifactID: "sqlite-jdbc"},
			Version:    sqliteDriverVersion,
			Scope:      "runtime",
			Reason:     "sqlite connectivity",
		})
	}

	if opts.UseLombok {
		reqs = append(reqs, Requirement{
			Coordinate: Coordinate{GroupID: "org.projectlombok", ArtifactID: "lombok"},
			Version:    lombokVersion,
			Scope:      "provided",
			Optional:   true,
			Reason:     "lombok annotations",
		})
	}
	if opts.UseSwagger {
		reqs = append(reqs, Requirement{
			Coordinate: Coordinate{GroupID: "org.springdoc", ArtifactID: "springdoc-openapi-starter-webmvc-ui"},
			Version:    springdocVersion,
			Reason:     "openapi annotations",
		})
	}
	if opts.GenerateMappers {
		reqs = append(reqs,
			Requirement{
				Coordinate: Coordinate{GroupID: "org.mapstruct", ArtifactID: "mapstruct"},
				Version:    mapstructVersion,
				Reason:     "mapstruct mappers",
			},
			Requirement{
				Coordinate: Coordinate{GroupID: "org.mapstruct", ArtifactID: "mapstruct-processor"},
				Version:    mapstructVersion,
				Scope:      "provided",
				Reason:     "mapstruct annotation processing",
			},
		)
	}
	return reqs
}
