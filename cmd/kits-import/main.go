package main

import (
	"flag"
	"log"
	"os"

	"github.com/burnett013/faa-kit-aircraft-main/internal/ingest"
	"github.com/joho/godotenv"
)

func main() {
	var (
		csvPath = flag.String("csv", "", "path to FAA kit aircraft extract CSV")
		dbURL   = flag.String("db", "", "DATABASE_URL (falls back to the env var)")
		wipe    = flag.Bool("wipe", false, "DANGER: drops and rebuilds the kits tables")
	)
	flag.Parse()

	_ = godotenv.Load(".env.local")
	if *dbURL == "" {
		*dbURL = os.Getenv("DATABASE_URL")
	}

	if *csvPath == "" || *dbURL == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := ingest.Config{
		CSVPath:     *csvPath,
		DatabaseURL: *dbURL,
		Wipe:        *wipe,
	}

	if err := ingest.Run(cfg); err != nil {
		log.Fatal(err)
	}
}
