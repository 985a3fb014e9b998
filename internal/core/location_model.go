package core

import (
	"fmt"
	"sort"
	"strings"
)

// LocationID identifies a stock location.
type LocationID int

// StockLocation is a storage location. The classification flags are owned by the
// inventory platform; this package only reads them.
type StockLocation struct {
	ID           LocationID  `json:"id"`
	CompanyID    int         `json:"company_id"`
	ParentID     *LocationID `json:"parent_id,omitempty"`
	Code         string      `json:"code"`
	Name         string      `json:"name"`
	IsInternal   bool        `json:"is_internal"`
	IsProcessing bool        `json:"is_processing"`
	IsDock       bool        `json:"is_dock"`
	IsReturn     bool        `json:"is_return"`
	IsActive     bool        `json:"is_active"`
}

// HasFlag reports whether the location carries the given classification flag.
func (l StockLocation) HasFlag(flag LocationFlag) bool {
	switch flag {
	case FlagProcessing:
		return l.IsProcessing
	case FlagDock:
		return l.IsDock
	case FlagReturn:
		return l.IsReturn
	}
	return false
}

// LocationFlag is a boolean classification carried by a stock location.
type LocationFlag string

const (
	FlagProcessing LocationFlag = "processing"
	FlagDock       LocationFlag = "dock"
	FlagReturn     LocationFlag = "return"
)

// LocationFlags lists every flag in a stable order.
var LocationFlags = []LocationFlag{FlagProcessing, FlagDock, FlagReturn}

// ParseLocationFlag accepts the flag name with or without the "is_" prefix.
func ParseLocationFlag(s string) (LocationFlag, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "is_")
	for _, f := range LocationFlags {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFlag, s)
}

// column returns the stock_locations column backing the flag.
// Only whitelisted names ever reach SQL.
func (f LocationFlag) column() (string, error) {
	switch f {
	case FlagProcessing:
		return "is_processing", nil
	case FlagDock:
		return "is_dock", nil
	case FlagReturn:
		return "is_return", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFlag, string(f))
}

// LocationFilter restricts an on-hand query to a set of locations.
//
// The zero value filters to nothing. AllLocations lifts the restriction, which
// means "internal stock" to the platform.
type LocationFilter struct {
	all bool
	ids map[LocationID]struct{}
}

// AllLocations returns an unrestricted filter.
func AllLocations() LocationFilter {
	return LocationFilter{all: true}
}

// OnlyLocations restricts to exactly the given ids. With no ids it matches nothing.
func OnlyLocations(ids ...LocationID) LocationFilter {
	set := make(map[LocationID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return LocationFilter{ids: set}
}

// IsAll reports whether the filter is unrestricted.
func (f LocationFilter) IsAll() bool { return f.all }

// IsEmpty reports whether the filter can match no location at all.
func (f LocationFilter) IsEmpty() bool { return !f.all && len(f.ids) == 0 }

// Contains reports whether id passes the filter.
func (f LocationFilter) Contains(id LocationID) bool {
	if f.all {
		return true
	}
	_, ok := f.ids[id]
	return ok
}

// IDs returns the restricted ids in ascending order. It is nil for AllLocations.
func (f LocationFilter) IDs() []LocationID {
	if f.all {
		return nil
	}
	out := make([]LocationID, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (f LocationFilter) String() string {
	if f.all {
		return "all"
	}
	return fmt.Sprint(f.IDs())
}
