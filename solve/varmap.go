package solve

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/typedef-go/typedef/internal/value"
	"github.com/typedef-go/typedef/types"
)

// VarEntry is the per-variable working memory described in §3: the
// candidate concrete types still consistent with every value
// observed so far, and the raw values that informed the variable at
// each occurrence.
type VarEntry struct {
	Candidates   []*types.Type
	ValuesByPath map[string][]value.Value
}

func (e VarEntry) clone() VarEntry {
	candidates := append([]*types.Type{}, e.Candidates...)
	byPath := make(map[string][]value.Value, len(e.ValuesByPath))
	for k, v := range e.ValuesByPath {
		byPath[k] = append([]value.Value{}, v...)
	}
	return VarEntry{Candidates: candidates, ValuesByPath: byPath}
}

// SortedPaths returns the occurrence paths with evidence for this
// variable, ordered by structural path order: integer-index
// components compare numerically before any lexicographic
// comparison, rather than the purely lexicographic sort the
// reference implementation used (which broke past index 9 — see
// DESIGN.md).
func (e VarEntry) SortedPaths() []string {
	paths := make([]string, 0, len(e.ValuesByPath))
	for p := range e.ValuesByPath {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		return lessPath(paths[i], paths[j])
	})
	return paths
}

func lessPath(a, b string) bool {
	as := strings.Split(a, "/")
	bs := strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		ac, aIsInt := indexOf(as[i])
		bc, bIsInt := indexOf(bs[i])
		switch {
		case aIsInt && bIsInt:
			if ac != bc {
				return ac < bc
			}
		case aIsInt != bIsInt:
			return aIsInt
		default:
			if as[i] != bs[i] {
				return as[i] < bs[i]
			}
		}
	}
	return len(as) < len(bs)
}

func indexOf(component string) (int, bool) {
	if !strings.HasPrefix(component, "$") {
		return 0, false
	}
	n, err := strconv.Atoi(component[1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// SerializePath turns a PropPath into the stable string key
// ValuesByPath is addressed by.
func SerializePath(p types.PropPath) string {
	return strings.Join(p, "/")
}

// VarMap is the value-semantic map<varName, VarEntry> threaded
// through a solve call: every refinement produces a fresh VarMap,
// never mutates one in place (§5). frameID tags the lineage a VarMap
// belongs to: every With keeps it, but Clone mints a fresh one, so
// that two branches taken from the same partially-applied callable
// (each retaining its own VarMap going forward) are distinguishable
// even though they started from byte-identical state.
type VarMap struct {
	entries map[string]VarEntry
	frameID string
}

// NewVarMap returns an empty map with a fresh frame id.
func NewVarMap() *VarMap {
	return &VarMap{entries: map[string]VarEntry{}, frameID: uuid.New().String()}
}

// FrameID identifies which curry call-frame lineage produced this
// VarMap, for diagnostics that need to tell two branches of the same
// definition apart.
func (m *VarMap) FrameID() string {
	if m == nil {
		return ""
	}
	return m.frameID
}

// Get returns the entry for name, if any.
func (m *VarMap) Get(name string) (VarEntry, bool) {
	if m == nil {
		return VarEntry{}, false
	}
	e, ok := m.entries[name]
	return e, ok
}

// With returns a new VarMap equal to m except name maps to e — the
// only mutation primitive VarMap exposes, and it never touches m.
func (m *VarMap) With(name string, e VarEntry) *VarMap {
	next := &VarMap{entries: make(map[string]VarEntry, len(m.entries)+1), frameID: m.frameID}
	for k, v := range m.entries {
		next.entries[k] = v
	}
	next.entries[name] = e
	return next
}

// Clone deep-copies m so that a curried callable can retain its own
// VarMap independent of branches taken from the same partial
// application; the clone gets its own frame id since it now evolves
// on a lineage of its own.
func (m *VarMap) Clone() *VarMap {
	next := &VarMap{entries: make(map[string]VarEntry, len(m.entries)), frameID: uuid.New().String()}
	for k, v := range m.entries {
		next.entries[k] = v.clone()
	}
	return next
}

// Names returns every variable name with an entry, for diagnostics
// that need to walk the whole map.
func (m *VarMap) Names() []string {
	names := make([]string, 0, len(m.entries))
	for k := range m.entries {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
