package heredity

import (
	"sort"
)

// MaxPersons is the largest pedigree that can be enumerated. Worlds are walked
// with one bit per person in a uint64, and the top bit is kept free so loop
// bounds never overflow.
const MaxPersons = 63

const noParent = -1

// Pedigree is the immutable family model. Every person is assigned a dense
// index; worlds, masks and distributions are all addressed by that index.
type Pedigree struct {
	persons []Person
	index   map[string]int
	mothers []int
	fathers []int

	// Bits are set for people whose trait was observed present or absent.
	presentMask uint64
	absentMask  uint64
}

// NewPedigree builds a pedigree from loader records keyed by name. People are
// indexed in name order so the result does not depend on map iteration.
func NewPedigree(records map[string]Record) (*Pedigree, error) {
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)

	persons := make([]Person, 0, len(names))
	for _, name := range names {
		rec := records[name]
		persons = append(persons, Person{
			Name:   name,
			Mother: rec.Mother,
			Father: rec.Father,
			Trait:  rec.Trait,
		})
	}

	return NewPedigreeFromPersons(persons)
}

// NewPedigreeFromPersons builds a pedigree that keeps the order of persons.
// It fails with a *DataIntegrityError if any record breaks the family-tree
// invariants, and with ErrTooManyPersons beyond MaxPersons people.
func NewPedigreeFromPersons(persons []Person) (*Pedigree, error) {
	if len(persons) > MaxPersons {
		return nil, ErrTooManyPersons
	}

	p := &Pedigree{
		persons: make([]Person, len(persons)),
		index:   make(map[string]int, len(persons)),
		mothers: make([]int, len(persons)),
		fathers: make([]int, len(persons)),
	}
	copy(p.persons, persons)

	for i, person := range p.persons {
		if person.Name == "" {
			return nil, &DataIntegrityError{Person: person.Name, Reason: "person has no name"}
		}
		if _, exists := p.index[person.Name]; exists {
			return nil, &DataIntegrityError{Person: person.Name, Reason: "person is listed more than once"}
		}
		p.index[person.Name] = i

		switch person.Trait {
		case TraitPresent:
			p.presentMask |= 1 << uint(i)
		case TraitAbsent:
			p.absentMask |= 1 << uint(i)
		case TraitUnknown:
		default:
			return nil, &DataIntegrityError{Person: person.Name, Reason: "trait is not Present, Absent or Unknown"}
		}
	}

	for i, person := range p.persons {
		p.mothers[i], p.fathers[i] = noParent, noParent
		if person.IsFounder() {
			continue
		}
		if person.Mother == "" || person.Father == "" {
			return nil, &DataIntegrityError{Person: person.Name, Reason: "exactly one parent is recorded; expected both or neither"}
		}

		for _, parent := range []struct {
			name string
			dst  *int
		}{{person.Mother, &p.mothers[i]}, {person.Father, &p.fathers[i]}} {
			j, exists := p.index[parent.name]
			if !exists {
				return nil, &DataIntegrityError{Person: person.Name, Reason: "parent " + parent.name + " is not in the pedigree"}
			}
			if j == i {
				return nil, &DataIntegrityError{Person: person.Name, Reason: "person is listed as their own parent"}
			}
			*parent.dst = j
		}
	}

	if err := p.checkAcyclic(); err != nil {
		return nil, err
	}

	return p, nil
}

// checkAcyclic walks ancestry depth-first and reports the first person found
// to be their own ancestor.
func (p *Pedigree) checkAcyclic() error {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make([]int, len(p.persons))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case inProgress:
			return &DataIntegrityError{Person: p.persons[i].Name, Reason: "person is their own ancestor"}
		}
		state[i] = inProgress
		for _, parent := range [2]int{p.mothers[i], p.fathers[i]} {
			if parent == noParent {
				continue
			}
			if err := visit(parent); err != nil {
				return err
			}
		}
		state[i] = done
		return nil
	}

	for i := range p.persons {
		if err := visit(i); err != nil {
			return err
		}
	}
	return nil
}

// Len is the number of people in the pedigree.
func (p *Pedigree) Len() int {
	return len(p.persons)
}

// Person returns the person at index i.
func (p *Pedigree) Person(i int) Person {
	return p.persons[i]
}

// Persons returns a copy of every person in index order.
func (p *Pedigree) Persons() []Person {
	out := make([]Person, len(p.persons))
	copy(out, p.persons)
	return out
}

// Index finds a person's position by name.
func (p *Pedigree) Index(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

// Parents returns the indices of person i's mother and father, and false for
// founders.
func (p *Pedigree) Parents(i int) (mother, father int, ok bool) {
	if p.mothers[i] == noParent {
		return noParent, noParent, false
	}
	return p.mothers[i], p.fathers[i], true
}

// NUnobserved counts the people whose trait is unknown. The enumerator visits
// 2^NUnobserved trait assignments.
func (p *Pedigree) NUnobserved() int {
	n := 0
	for _, person := range p.persons {
		if !person.Trait.Known() {
			n++
		}
	}
	return n
}
