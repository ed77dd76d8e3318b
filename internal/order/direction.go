package order

// Direction selects which of the two orderings a scheduling pass builds.
//
// The two passes are independent: cycle breaking and subsumption decisions
// are made per direction, so the removal ordering is not guaranteed to be
// the exact reverse of the installation ordering.
type Direction int

const (
	// DirectionInstall orders providers before requirers.
	DirectionInstall Direction = iota

	// DirectionRemove orders requirers before providers.
	DirectionRemove
)

func (d Direction) String() string {
	switch d {
	case DirectionInstall:
		return "install"
	case DirectionRemove:
		return "remove"
	default:
		return "unknown"
	}
}
