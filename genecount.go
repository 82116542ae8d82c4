package heredity

// GeneCount is the number of copies of the variant allele carried by one
// person in one world.
type GeneCount uint8

const (
	NoCopies GeneCount = iota
	OneCopy
	TwoCopies
)

// NGeneCounts is the number of distinct GeneCount values.
const NGeneCounts = 3

func (g GeneCount) String() string {
	switch g {
	case NoCopies:
		return "0"
	case OneCopy:
		return "1"
	case TwoCopies:
		return "2"

	default:
		return "Illegal selection"
	}
}

// Valid reports whether g is one of the three legal copy counts.
func (g GeneCount) Valid() bool {
	return g <= TwoCopies
}
