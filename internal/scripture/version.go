package scripture

import (
	"slices"
	"strings"
)

// UnknownPriority is assigned to versions that match no keyword group.
const UnknownPriority = 999

// Version is a scripture version normalized from its raw datastore name.
type Version struct {
	ID          int64
	RawName     string
	Alias       string
	DisplayName string
	Priority    int
}

// VersionRow is a raw (id, name) row from the versions table.
type VersionRow struct {
	ID   int64
	Name string
}

type versionClass struct {
	keywords    []string
	alias       string
	displayName string
	priority    int
}

// Checked in order; the first group with any keyword contained in the
// lowercased raw name wins.
var versionClasses = []versionClass{
	{keywords: []string{"reina", "1960"}, alias: "RVR", displayName: "Reina Valera 1960", priority: 0},
	{keywords: []string{"nvi"}, alias: "NVI", displayName: "Nueva Versión Internacional", priority: 1},
	{keywords: []string{"ntv"}, alias: "NTV", displayName: "Nueva Traducción Viviente", priority: 2},
	{keywords: []string{"lbla", "americas"}, alias: "LBLA", displayName: "La Biblia de las Américas", priority: 3},
	{keywords: []string{"tla"}, alias: "TLA", displayName: "Traducción en Lenguaje Actual", priority: 4},
	{keywords: []string{"dhh", "interconfesional"}, alias: "DHH", displayName: "Dios Habla Hoy", priority: 5},
}

// ClassifyVersion maps a raw version row to its alias, display name and
// priority. Unrecognized names keep their raw name for display and take the
// first four characters, uppercased, as alias.
func ClassifyVersion(row VersionRow) Version {
	lowered := strings.ToLower(row.Name)
	for _, class := range versionClasses {
		for _, kw := range class.keywords {
			if strings.Contains(lowered, kw) {
				return Version{
					ID:          row.ID,
					RawName:     row.Name,
					Alias:       class.alias,
					DisplayName: class.displayName,
					Priority:    class.priority,
				}
			}
		}
	}
	return Version{
		ID:          row.ID,
		RawName:     row.Name,
		Alias:       fallbackAlias(row.Name),
		DisplayName: row.Name,
		Priority:    UnknownPriority,
	}
}

func fallbackAlias(raw string) string {
	runes := []rune(raw)
	if len(runes) > 4 {
		runes = runes[:4]
	}
	return strings.ToUpper(string(runes))
}

// VersionRegistry is the classified version list, sorted by ascending priority
// with discovery order kept among equal priorities. It is read-only once
// loaded; the active version lives in Selection.
type VersionRegistry struct {
	versions []Version
}

// LoadVersions classifies rows and sorts them by priority.
func LoadVersions(rows []VersionRow) *VersionRegistry {
	versions := make([]Version, 0, len(rows))
	for _, row := range rows {
		versions = append(versions, ClassifyVersion(row))
	}
	SortVersions(versions)
	return &VersionRegistry{versions: versions}
}

// SortVersions stably sorts versions by ascending priority.
func SortVersions(versions []Version) {
	slices.SortStableFunc(versions, func(a, b Version) int {
		return a.Priority - b.Priority
	})
}

// Versions returns a copy of the sorted list.
func (r *VersionRegistry) Versions() []Version {
	if r == nil {
		return nil
	}
	return slices.Clone(r.versions)
}

// Len returns the number of loaded versions.
func (r *VersionRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.versions)
}

// Default returns the highest-priority version, if any were loaded.
func (r *VersionRegistry) Default() (Version, bool) {
	if r.Len() == 0 {
		return Version{}, false
	}
	return r.versions[0], true
}

// FindByDisplayName returns the first version whose display name equals name.
func (r *VersionRegistry) FindByDisplayName(name string) (Version, bool) {
	if r == nil {
		return Version{}, false
	}
	for _, v := range r.versions {
		if v.DisplayName == name {
			return v, true
		}
	}
	return Version{}, false
}

// Next returns the first version after the one with the given id whose
// display name differs from it, wrapping around. Versions are selected by
// display name, so a same-named neighbour would select the current one
// again. With an unknown id it returns the default.
func (r *VersionRegistry) Next(id int64) (Version, bool) {
	if r.Len() == 0 {
		return Version{}, false
	}
	n := len(r.versions)
	for i, v := range r.versions {
		if v.ID != id {
			continue
		}
		for step := 1; step < n; step++ {
			if next := r.versions[(i+step)%n]; next.DisplayName != v.DisplayName {
				return next, true
			}
		}
		return v, true
	}
	return r.versions[0], true
}
