package heredity

import (
	"strings"
	"time"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
)

const resultSchema = `
CREATE TABLE IF NOT EXISTS Run (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	source        TEXT    NOT NULL,
	n_persons     INTEGER NOT NULL,
	worlds_scored INTEGER NOT NULL,
	mutation_rate REAL    NOT NULL,
	created_at    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS Posterior (
	run_id      INTEGER NOT NULL REFERENCES Run(id),
	person      TEXT    NOT NULL,
	gene0       REAL    NOT NULL,
	gene1       REAL    NOT NULL,
	gene2       REAL    NOT NULL,
	trait_true  REAL    NOT NULL,
	trait_false REAL    NOT NULL,
	PRIMARY KEY (run_id, person)
);
`

// ResultDB stores inference results in a SQLite database so that runs over
// the same family can be compared later.
type ResultDB struct {
	DB *sqlx.DB
}

func (r *ResultDB) Close() error {
	return r.DB.Close()
}

// OpenResultDB opens (creating if needed) the SQLite database at path and
// ensures the Run and Posterior tables exist.
func OpenResultDB(path string) (*ResultDB, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html . It seems that sqlite3 permitted
	// URI filenames without the file: prefix, but that is not standard.
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	db, err := sqlx.Connect(whichSQLiteDriver, path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	// Foreign keys are enforced per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqlitePragmas); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}
	if _, err := db.Exec(resultSchema); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	return &ResultDB{DB: db}, nil
}

// RunRecord conforms to the rows of the Run table.
type RunRecord struct {
	ID           int64   `db:"id"`
	Source       string  `db:"source"`
	NPersons     int     `db:"n_persons"`
	WorldsScored int64   `db:"worlds_scored"`
	MutationRate float64 `db:"mutation_rate"`
	CreatedAt    Time    `db:"created_at"`
}

// PosteriorRecord conforms to the rows of the Posterior table.
type PosteriorRecord struct {
	RunID      int64   `db:"run_id"`
	Person     string  `db:"person"`
	Gene0      float64 `db:"gene0"`
	Gene1      float64 `db:"gene1"`
	Gene2      float64 `db:"gene2"`
	TraitTrue  float64 `db:"trait_true"`
	TraitFalse float64 `db:"trait_false"`
}

// Distribution converts the row back into a Distribution.
func (p PosteriorRecord) Distribution() Distribution {
	return Distribution{
		Gene:  [NGeneCounts]float64{p.Gene0, p.Gene1, p.Gene2},
		Trait: [2]float64{p.TraitFalse, p.TraitTrue},
	}
}

// SaveResult writes res as a new run labelled with source, in one
// transaction, and returns the run's ID.
func (r *ResultDB) SaveResult(source string, res *Result) (int64, error) {
	tx, err := r.DB.Beginx()
	if err != nil {
		return 0, pfx.Err(err)
	}
	defer tx.Rollback()

	out, err := tx.Exec(
		"INSERT INTO Run (source, n_persons, worlds_scored, mutation_rate, created_at) VALUES (?, ?, ?, ?, ?)",
		source, res.Pedigree.Len(), int64(res.WorldsScored), res.Model.MutationRate, time.Now().Unix(),
	)
	if err != nil {
		return 0, pfx.Err(err)
	}
	runID, err := out.LastInsertId()
	if err != nil {
		return 0, pfx.Err(err)
	}

	for i, person := range res.Pedigree.Persons() {
		d := res.Dists[i]
		row := PosteriorRecord{
			RunID:      runID,
			Person:     person.Name,
			Gene0:      d.Gene[NoCopies],
			Gene1:      d.Gene[OneCopy],
			Gene2:      d.Gene[TwoCopies],
			TraitTrue:  d.TraitWeight(true),
			TraitFalse: d.TraitWeight(false),
		}
		if _, err := tx.NamedExec(`INSERT INTO Posterior (run_id, person, gene0, gene1, gene2, trait_true, trait_false)
			VALUES (:run_id, :person, :gene0, :gene1, :gene2, :trait_true, :trait_false)`, row); err != nil {
			return 0, pfx.Err(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, pfx.Err(err)
	}

	log.Debugf("saved run %d from %s with %d posteriors", runID, source, res.Pedigree.Len())

	return runID, nil
}

// Runs lists every stored run, oldest first.
func (r *ResultDB) Runs() ([]RunRecord, error) {
	var runs []RunRecord
	if err := r.DB.Select(&runs, "SELECT * FROM Run ORDER BY id ASC"); err != nil {
		return nil, pfx.Err(err)
	}
	return runs, nil
}

// Posteriors returns the stored posteriors of one run, ordered by person.
func (r *ResultDB) Posteriors(runID int64) ([]PosteriorRecord, error) {
	var rows []PosteriorRecord
	if err := r.DB.Select(&rows, "SELECT * FROM Posterior WHERE run_id = ? ORDER BY person ASC", runID); err != nil {
		return nil, pfx.Err(err)
	}
	return rows, nil
}

func WhichSQLiteDriver() string {
	return whichSQLiteDriver
}
