// Package manifest reads Maven project manifests and reconciles them
// against the dependency set the generated code requires. Reconciliation is
// additive: it proposes missing dependencies and version upgrades, and never
// removes or downgrades anything the project already declares.
package manifest

import (
	"encoding/xml"
	"io"
	"regexp"
	"strings"
)

// Dependency is one declared Maven dependency with its version resolved
// against the project's properties where possible.
type Dependency struct {
	GroupID    string
	ArtifactID string
	Version    string // resolved; empty when managed elsewhere
	RawVersion string // as written, e.g. "${mybatis.version}"
	Scope      string
	Optional   bool
}

// Coordinate identifies a dependency independent of its version.
func (d Dependency) Coordinate() Coordinate {
	return Coordinate{GroupID: d.GroupID, ArtifactID: d.ArtifactID}
}

// Manifest is the parsed view of one pom.xml.
type Manifest struct {
	GroupID    string
	ArtifactID string
	Properties map[string]string
	// Dependencies holds <dependencies> and <dependencyManagement> entries.
	Dependencies []Dependency
}

// Find returns the declared dependency for a coordinate, if any.
func (m *Manifest) Find(c Coordinate) (Dependency, bool) {
	for _, d := range m.Dependencies {
		if d.Coordinate() == c {
			return d, true
		}
	}
	return Dependency{}, false
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}

type pomProperties struct {
	entries map[string]string
}

// UnmarshalXML collects every child element of <properties> into a flat map.
func (p *pomProperties) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	p.entries = make(map[string]string)
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var v string
			if err := dec.DecodeElement(&v, &t); err != nil {
				return err
			}
			p.entries[t.Name.Local] = strings.TrimSpace(v)
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

type pom struct {
	XMLName      xml.Name        `xml:"project"`
	GroupID      string          `xml:"groupId"`
	ArtifactID   string          `xml:"artifactId"`
	Properties   pomProperties   `xml:"properties"`
	Dependencies []pomDependency `xml:"dependencies>dependency"`
	Managed      []pomDependency `xml:"dependencyManagement>dependencies>dependency"`
}

// propertyRe matches a whole-value property reference like ${mybatis.version}.
var propertyRe = regexp.MustCompile(`^\$\{([^}]+)\}$`)

// Parse reads a pom.xml. Versions written as ${property} references are
// resolved against <properties>; references with no matching property keep
// their raw spelling and an empty resolved version.
func Parse(r io.Reader) (*Manifest, error) {
	var doc pom
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, NewParseError("pom.xml", err)
	}
	m := &Manifest{
		GroupID:    strings.TrimSpace(doc.GroupID),
		ArtifactID: strings.TrimSpace(doc.ArtifactID),
		Properties: doc.Properties.entries,
	}
	if m.Properties == nil {
		m.Properties = make(map[string]string)
	}
	for _, src := range [][]pomDependency{doc.Dependencies, doc.Managed} {
		for _, d := range src {
			dep := Dependency{
				GroupID:    strings.TrimSpace(d.GroupID),
				ArtifactID: strings.TrimSpace(d.ArtifactID),
				RawVersion: strings.TrimSpace(d.Version),
				Scope:      strings.TrimSpace(d.Scope),
				Optional:   strings.TrimSpace(d.Optional) == "true",
			}
			dep.Version = m.resolve(dep.RawVersion)
			m.Dependencies = append(m.Dependencies, dep)
		}
	}
	return m, nil
}

func (m *Manifest) resolve(raw string) string {
	match := propertyRe.FindStringSubmatch(raw)
	if match == nil {
		return raw
	}
	return m.Properties[match[1]]
}
