package materials

import "sort"

type Recyclability int

const (
	Unmapped Recyclability = iota
	Possible
	NotPossible
)

func (r Recyclability) String() string {
	switch r {
	case Possible:
		return "possible"
	case NotPossible:
		return "not-possible"
	default:
		return "unmapped"
	}
}

// RecyclingLookup maps a component identifier to its recyclability. The
// zero value is an empty table; use NewRecyclingLookup to build one.
type RecyclingLookup struct {
	m map[string]Recyclability
}

func NewRecyclingLookup(entries map[string]Recyclability) RecyclingLookup {
	m := make(map[string]Recyclability, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return RecyclingLookup{m: m}
}

func DefaultRecyclingLookup() RecyclingLookup {
	return NewRecyclingLookup(map[string]Recyclability{
		"Cast-In-Place Concrete": Possible,
		"Cement Brick":           Possible, // not in the default allow-list
		"Steel Structure":        Possible,
		"Glass":                  Possible,
		"Wood":                   Possible,
		"Plasterboard":           NotPossible,
		"Plastic":                NotPossible,
	})
}

// Lookup returns Unmapped for identifiers not in the table.
func (l RecyclingLookup) Lookup(id string) Recyclability {
	return l.m[id]
}

func (l RecyclingLookup) Identifiers() []string {
	ids := make([]string, 0, len(l.m))
	for id := range l.m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AllowList is the set of component identifiers kept by Filter, in
// declaration order.
type AllowList struct {
	ids []string
	set map[string]struct{}
}

func NewAllowList(ids ...string) AllowList {
	al := AllowList{set: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if _, ok := al.set[id]; ok {
			continue
		}
		al.set[id] = struct{}{}
		al.ids = append(al.ids, id)
	}
	return al
}

func DefaultAllowList() AllowList {
	return NewAllowList(
		"Cast-In-Place Concrete",
		"Steel Structure",
		"Glass",
		"Wood",
		"Plasterboard",
		"Plastic",
	)
}

func (a AllowList) Contains(id string) bool {
	_, ok := a.set[id]
	return ok
}

func (a AllowList) Identifiers() []string {
	return append([]string(nil), a.ids...)
}

// UnreachableLookupEntries lists lookup identifiers that Filter can never
// let through with the given allow-list.
func UnreachableLookupEntries(allow AllowList, lookup RecyclingLookup) []string {
	var res []string
	for _, id := range lookup.Identifiers() {
		if !allow.Contains(id) {
			res = append(res, id)
		}
	}
	return res
}

// UnmappedAllowed lists allow-list identifiers that have no lookup entry
// and therefore derive as Unmapped.
func UnmappedAllowed(allow AllowList, lookup RecyclingLookup) []string {
	var res []string
	for _, id := range allow.ids {
		if lookup.Lookup(id) == Unmapped {
			res = append(res, id)
		}
	}
	return res
}
