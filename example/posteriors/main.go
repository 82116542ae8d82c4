package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/carbocation/heredity"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("heredity/posteriors")

func main() {
	dbPath := flag.String("db", "", "SQLite file written by the infer program")
	runID := flag.Int64("run", 0, "Run to print. 0 lists the runs instead")
	flag.Parse()

	logging.SetBackend(logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stderr, "posteriors: ", 0),
		logging.MustStringFormatter("%{level:8s} | %{message}"),
	))

	if *dbPath == "" {
		flag.PrintDefaults()
		log.Fatal("No result database given")
	}

	db, err := heredity.OpenResultDB(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if *runID == 0 {
		runs, err := db.Runs()
		if err != nil {
			log.Fatal(err)
		}
		for _, run := range runs {
			fmt.Printf("%d) %s persons=%d worlds=%d mutation=%g at %s\n",
				run.ID, run.Source, run.NPersons, run.WorldsScored, run.MutationRate, run.CreatedAt.Time().Format("2006-01-02 15:04:05"))
		}
		log.Infof("Saw %d runs", len(runs))
		return
	}

	rows, err := db.Posteriors(*runID)
	if err != nil {
		log.Fatal(err)
	}
	if len(rows) == 0 {
		log.Fatalf("run %d has no posteriors", *runID)
	}
	for _, row := range rows {
		d := row.Distribution()
		fmt.Printf("%s\tgene0=%.4f\tgene1=%.4f\tgene2=%.4f\ttrait=%.4f\n",
			row.Person, d.Gene[heredity.NoCopies], d.Gene[heredity.OneCopy], d.Gene[heredity.TwoCopies], d.TraitWeight(true))
	}
}
