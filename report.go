package heredity

import (
	"fmt"
	"io"
)

// WriteReport prints each person's posterior in pedigree order, gene counts
// from two copies down to none, and the trait as True then False, to four
// decimal places.
func WriteReport(w io.Writer, r *Result) error {
	for i, person := range r.Pedigree.Persons() {
		d := r.Dists[i]

		if _, err := fmt.Fprintf(w, "%s:\n  Gene:\n", person.Name); err != nil {
			return err
		}
		for _, g := range []GeneCount{TwoCopies, OneCopy, NoCopies} {
			if _, err := fmt.Fprintf(w, "    %s: %.4f\n", g, d.GeneWeight(g)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "  Trait:\n    True: %.4f\n    False: %.4f\n", d.TraitWeight(true), d.TraitWeight(false)); err != nil {
			return err
		}
	}
	return nil
}
