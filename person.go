package heredity

// Person is one member of a pedigree. Mother and Father are either both empty
// (a founder) or both name other members of the same pedigree.
type Person struct {
	Name   string
	Mother string
	Father string
	Trait  Trait
}

// IsFounder is true for people with no recorded parents. Their gene count
// follows the unconditional prior.
func (p Person) IsFounder() bool {
	return p.Mother == "" && p.Father == ""
}

// Record is the shape produced by pedigree loaders, keyed externally by the
// person's name.
type Record struct {
	Mother string
	Father string
	Trait  Trait
}
