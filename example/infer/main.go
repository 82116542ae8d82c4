package main

import (
	"context"
	"flag"
	"os"
	"runtime"

	"github.com/carbocation/heredity"
	"github.com/carbocation/pfx"
	"github.com/op/go-logging"
	"github.com/prometheus/client_golang/prometheus"
)

var log = logging.MustGetLogger("heredity/infer")

func startLogging(debug bool) {
	backend := logging.NewLogBackend(os.Stderr, "infer: ", 0)
	formatter := logging.MustStringFormatter("%{level:8s} %{module:-16s} | %{message}")
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))
	leveled.SetLevel(logging.INFO, "")
	if debug {
		leveled.SetLevel(logging.DEBUG, "")
	}
	logging.SetBackend(leveled)
}

func main() {
	path := flag.String("pedigree", "", "Pedigree CSV (name,mother,father,trait). May be gzip/zstd compressed or a gs:// URL")
	dbPath := flag.String("db", "", "Optional SQLite file in which to store the posteriors")
	workers := flag.Int("workers", 1, "Number of parallel workers. 0 means one per CPU")
	maxPersons := flag.Int("max-persons", 20, "Refuse pedigrees larger than this; inference is exponential in pedigree size")
	metricsPath := flag.String("metrics", "", "Optional file to which Prometheus metrics are written on exit")
	debug := flag.Bool("debug", false, "Log enumeration progress")
	flag.Parse()

	startLogging(*debug)

	if *path == "" {
		flag.PrintDefaults()
		log.Fatal("Usage: infer -pedigree data.csv")
	}

	model, err := heredity.ModelFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	ped, err := heredity.OpenPedigree(ctx, *path, nil)
	if err != nil {
		log.Fatal(err)
	}
	if ped.Len() > *maxPersons {
		log.Fatalf("pedigree has %d persons; the limit is %d (see -max-persons)", ped.Len(), *maxPersons)
	}
	log.Infof("loaded %d persons from %s", ped.Len(), *path)

	var res *heredity.Result
	if *workers == 1 {
		res, err = heredity.Infer(ped, model)
	} else {
		if *workers < 1 {
			*workers = runtime.NumCPU()
		}
		log.Infof("launching %d workers", *workers)
		res, err = heredity.InferParallel(ctx, ped, model, *workers)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("scored %d worlds", res.WorldsScored)

	if err := heredity.WriteReport(os.Stdout, res); err != nil {
		log.Fatal(pfx.Err(err))
	}

	if *dbPath != "" {
		db, err := heredity.OpenResultDB(*dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()

		runID, err := db.SaveResult(*path, res)
		if err != nil {
			log.Fatal(err)
		}
		log.Infof("stored run %d in %s using the %s driver", runID, *dbPath, heredity.WhichSQLiteDriver())
	}

	if *metricsPath != "" {
		if err := prometheus.WriteToTextfile(*metricsPath, prometheus.DefaultGatherer); err != nil {
			log.Fatal(pfx.Err(err))
		}
	}
}
