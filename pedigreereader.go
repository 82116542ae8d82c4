package heredity

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/pfx"
)

// Columns every pedigree file must carry in its header row. Other columns are
// ignored.
const (
	ColumnName   = "name"
	ColumnMother = "mother"
	ColumnFather = "father"
	ColumnTrait  = "trait"
)

// PedigreeReader streams Person rows out of a CSV pedigree file. A blank
// mother and father mark a founder; the trait cell is "1", "0" or blank.
type PedigreeReader struct {
	RowsSeen int

	csv     *csv.Reader
	columns map[string]int
	err     error
}

// NewPedigreeReader consumes the header row of r and checks that the required
// columns are present.
func NewPedigreeReader(r io.Reader) (*PedigreeReader, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("reading pedigree header: %w", err))
	}

	columns := make(map[string]int, len(header))
	for i, col := range header {
		columns[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{ColumnName, ColumnMother, ColumnFather, ColumnTrait} {
		if _, ok := columns[required]; !ok {
			return nil, pfx.Err(fmt.Errorf("pedigree header %v has no %q column", header, required))
		}
	}

	return &PedigreeReader{
		csv:     cr,
		columns: columns,
	}, nil
}

func (pr *PedigreeReader) Error() error {
	return pr.err
}

// Read returns the next person, or nil once the input is exhausted or an
// error has occurred. Check Error after Read returns nil.
func (pr *PedigreeReader) Read() *Person {
	if pr.err != nil {
		return nil
	}

	row, err := pr.csv.Read()
	if err == io.EOF {
		return nil
	} else if err != nil {
		pr.err = pfx.Err(err)
		return nil
	}
	pr.RowsSeen++

	person := &Person{
		Name:   strings.TrimSpace(row[pr.columns[ColumnName]]),
		Mother: strings.TrimSpace(row[pr.columns[ColumnMother]]),
		Father: strings.TrimSpace(row[pr.columns[ColumnFather]]),
	}

	person.Trait, err = ParseTrait(row[pr.columns[ColumnTrait]])
	if err != nil {
		pr.err = &DataIntegrityError{Person: person.Name, Reason: err.Error()}
		return nil
	}

	return person
}

// ReadPedigree reads every row of a CSV pedigree and builds the Pedigree, in
// file order. A name repeated with a different trait is reported as
// conflicting evidence.
func ReadPedigree(r io.Reader) (*Pedigree, error) {
	pr, err := NewPedigreeReader(r)
	if err != nil {
		return nil, err
	}

	var persons []Person
	seen := make(map[string]Person)
	for {
		person := pr.Read()
		if person == nil {
			break
		}

		if prior, exists := seen[person.Name]; exists {
			if prior.Trait != person.Trait {
				return nil, &DataIntegrityError{
					Person: person.Name,
					Reason: fmt.Sprintf("conflicting trait observations %s and %s", prior.Trait, person.Trait),
				}
			}
			return nil, &DataIntegrityError{Person: person.Name, Reason: "person is listed more than once"}
		}
		seen[person.Name] = *person
		persons = append(persons, *person)
	}
	if err := pr.Error(); err != nil {
		return nil, err
	}

	log.Debugf("read %d persons from pedigree", pr.RowsSeen)

	return NewPedigreeFromPersons(persons)
}
