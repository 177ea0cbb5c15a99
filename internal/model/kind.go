package model

// BicycleKind is the closed set of bicycle categories a candidate can
// register for.  The numeric values are stable and stored as-is in the
// registrations table, so they must never be reordered.
type BicycleKind uint8

const (
	KindMens       BicycleKind = 1 // men's bicycle
	KindLadies     BicycleKind = 2 // ladies' bicycle
	KindChildSmall BicycleKind = 3 // children's bicycle small
	KindChildBig   BicycleKind = 4 // children's bicycle big
)

// AllKinds returns every valid kind in display order.  Handlers iterate
// this when building choice lists and per-kind groupings.
func AllKinds() []BicycleKind {
	return []BicycleKind{KindMens, KindLadies, KindChildSmall, KindChildBig}
}

// Valid reports whether k is one of the four known kinds.
func (k BicycleKind) Valid() bool {
	return k >= KindMens && k <= KindChildBig
}

// Label returns the human-readable name shown to registrants and staff.
func (k BicycleKind) Label() string {
	switch k {
	case KindMens:
		return "men's bicycle"
	case KindLadies:
		return "ladies' bicycle"
	case KindChildSmall:
		return "children's bicycle small"
	case KindChildBig:
		return "children's bicycle big"
	default:
		return "unknown"
	}
}
