package packed

// Popcount identifies the population count implementation the CPU offers.
type Popcount uint8

const (
	// Generic is the portable table-free fallback of math/bits.
	Generic Popcount = iota
	// POPCNT is the x86-64 POPCNT instruction.
	POPCNT
	// NEON is the ARM64 vector CNT instruction.
	NEON
)

// String returns the string representation of a Popcount.
func (p Popcount) String() string {
	switch p {
	case Generic:
		return "generic"
	case POPCNT:
		return "popcnt"
	case NEON:
		return "neon"
	default:
		return "unknown"
	}
}

// Set by platform-specific init.
var (
	hasPOPCNT bool
	hasASIMD  bool
)

// Capabilities reports the popcount implementation used by Distance and the
// leaf scans on this machine.
func Capabilities() Popcount {
	switch {
	case hasPOPCNT:
		return POPCNT
	case hasASIMD:
		return NEON
	default:
		return Generic
	}
}
