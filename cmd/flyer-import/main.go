// flyer-import loads one or more parsed flyer JSON files straight into the
// database, bypassing the HTTP API. Useful for nightly batch imports.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/flyer-import flyer1.json [flyer2.json ...]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/epiceriemtl/epicerie_backend/config"
	"github.com/epiceriemtl/epicerie_backend/models"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: flyer-import <flyer.json> [more.json ...]")
		os.Exit(2)
	}

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}
	models.MigrateTable()

	exitCode := 0
	for _, path := range os.Args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			exitCode = 1
			continue
		}
		var payload models.FlyerImport
		if err := json.Unmarshal(data, &payload); err != nil {
			fmt.Fprintf(os.Stderr, "%s: invalid flyer JSON: %v\n", path, err)
			exitCode = 1
			continue
		}
		result, err := models.ImportFlyer(ctx, &payload)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: import failed: %v\n", path, err)
			exitCode = 1
			continue
		}
		fmt.Printf("%s: %s circulaire=%d imported=%d skipped=%d\n",
			path, result.CommerceNom, result.CirculaireId, result.ImportedCount, result.SkippedCount)
	}
	os.Exit(exitCode)
}
