package manifest

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var quadVersionRe = regexp.MustCompile(`^(\d+\.\d+\.\d+)\.(\d+)$`)

// parseVersion reads a Maven version for comparison. Maven allows a fourth
// numeric segment (sqlite-jdbc ships 3.46.1.3) that semver has no slot for;
// it is folded into the prerelease position, where numeric identifiers keep
// their ordering.
func parseVersion(s string) (*semver.Version, error) {
	if m := quadVersionRe.FindStringSubmatch(s); m != nil {
		s = m[1] + "-" + m[2]
	}
	return semver.NewVersion(s)
}

// Upgrade proposes raising one declared dependency to the catalog version.
type Upgrade struct {
	Coordinate
	From   string
	To     string
	Reason string
}

// Patch is the additive difference between a manifest and a requirement set.
// Applying the same patch twice, or reconciling an already-patched manifest,
// yields an empty patch.
type Patch struct {
	Additions []Requirement
	Upgrades  []Upgrade
}

// Empty reports whether the manifest already satisfies every requirement.
func (p *Patch) Empty() bool {
	return len(p.Additions) == 0 && len(p.Upgrades) == 0
}

// Reconcile compares the manifest against the requirements. A requirement
// absent from the manifest becomes an addition; one declared at a provably
// older version becomes an upgrade. Declared versions that cannot be
// compared, including unresolved property references, are left untouched.
func Reconcile(m *Manifest, reqs []Requirement) *Patch {
	p := &Patch{}
	for _, req := range reqs {
		dep, ok := m.Find(req.Coordinate)
		if !ok {
			p.Additions = append(p.Additions, req)
			continue
		}
		if dep.Version == "" {
			continue
		}
		have, err := parseVersion(dep.Version)
		if err != nil {
			continue
		}
		want, err := parseVersion(req.Version)
		if err != nil {
			continue
		}
		if have.LessThan(want) {
			p.Upgrades = append(p.Upgrades, Upgrade{
				Coordinate: req.Coordinate,
				From:       dep.Version,
				To:         req.Version,
				Reason:     req.Reason,
			})
		}
	}
	sort.Slice(p.Additions, func(i, j int) bool {
		return p.Additions[i].less(p.Additions[j].Coordinate)
	})
	sort.Slice(p.Upgrades, func(i, j int) bool {
		return p.Upgrades[i].less(p.Upgrades[j].Coordinate)
	})
	return p
}

func (c Coordinate) less(o Coordinate) bool {
	if c.GroupID != o.GroupID {
		return c.GroupID < o.GroupID
	}
	return c.ArtifactID < o.ArtifactID
}

// Snippet renders the additions as pom.xml <dependency> blocks, ready to be
// pasted into the project's <dependencies> section.
func (p *Patch) Snippet() string {
	var b strings.Builder
	for _, req := range p.Additions {
		b.WriteString("<dependency>\n")
		b.WriteString("    <groupId>" + req.GroupID + "</groupId>\n")
		b.WriteString("    <artifactId>" + req.ArtifactID + "</artifactId>\n")
		b.WriteString("    <version>" + req.Version + "</version>\n")
		if req.Scope != "" {
			b.WriteString("    <scope>" + req.Scope + "</scope>\n")
		}
		if req.Optional {
			b.WriteString("    <optional>true</optional>\n")
		}
		b.WriteString("</dependency>\n")
	}
	return b.String()
}
