package entity

import (
	"slices"
	"sort"
)

// Principal is the caller as established by the access-control resolver.
// BusinessArea is the legacy primary area carried in the token;
// BusinessAreas is the effective, sorted and de-duplicated set.
type Principal struct {
	UserID        uint     `json:"id"`
	Email         string   `json:"email"`
	Username      string   `json:"username"`
	BusinessArea  string   `json:"businessArea"`
	BusinessAreas []string `json:"businessAreas"`
}

// Authenticated reports whether a verified token was presented.
func (p *Principal) Authenticated() bool {
	return p != nil && p.UserID != 0
}

// Authorized reports whether the caller may touch any record at all.
func (p *Principal) Authorized() bool {
	return p.Authenticated() && len(p.BusinessAreas) > 0
}

// CanAccess reports whether area is in the caller's set.
func (p *Principal) CanAccess(area string) bool {
	if p == nil {
		return false
	}
	_, found := slices.BinarySearch(p.BusinessAreas, area)
	return found
}

// DefaultArea is the area new records land in when none is given.
func (p *Principal) DefaultArea() string {
	if p == nil || len(p.BusinessAreas) == 0 {
		return ""
	}
	return p.BusinessAreas[0]
}

// NormalizeAreas drops blanks and duplicates and sorts the result.
func NormalizeAreas(areas []string) []string {
	seen := make(map[string]struct{}, len(areas))
	out := make([]string, 0, len(areas))
	for _, a := range areas {
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
