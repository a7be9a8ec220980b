package workday

// Mode selects which free slot a request may be matched against.
type Mode int

const (
	// Exact places the request at its own start, inside the free slot containing it.
	Exact Mode = iota
	// AnyFree places the request at the start of the first free slot of the day.
	AnyFree
	// AnyFreeAfter places the request in the first free slot that contains its
	// start or begins after it. Slots beginning after it anchor the request at
	// their own start.
	AnyFreeAfter
)

// Valid returns true if the mode is a known value.
func (m Mode) Valid() bool {
	switch m {
	case Exact, AnyFree, AnyFreeAfter:
		return true
	default:
		return false
	}
}

func (m Mode) String() string {
	switch m {
	case Exact:
		return "exact"
	case AnyFree:
		return "any-free"
	case AnyFreeAfter:
		return "any-free-after"
	default:
		return "unknown"
	}
}
