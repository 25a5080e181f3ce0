package main

import (
	"flag"
	"fmt"
	"os"

	"idvdemo/internal/platform/config"
	"idvdemo/internal/platform/database"
	"idvdemo/internal/platform/store"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the config file")
	dbPath := flag.String("db", "", "Override store.sqlite_path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	path := cfg.Store.SQLitePath
	if *dbPath != "" {
		path = *dbPath
	}

	db, err := database.Open(path, 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", path, err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	for _, name := range store.Migrations() {
		fmt.Printf("Applied %s\n", name)
	}
	fmt.Printf("Store schema is up to date at %s\n", path)
}
