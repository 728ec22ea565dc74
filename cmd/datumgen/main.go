// Command datumgen writes the v1 header fixtures.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/danmuck/datumctl/internal/testutil/datumtest"
)

type fixture struct {
	name  string
	build func() datumtest.Raw
}

var fixtures = []fixture{
	{datumtest.ValidMinimal, datumtest.Minimal},
	{datumtest.ValidFullFeatured, datumtest.FullFeatured},
	{datumtest.InvalidFullFeatured, datumtest.InvalidFullFeaturedHeader},
}

func main() {
	dir := flag.String("dir", "internal/datum/testdata/v1", "output directory for fixtures")
	check := flag.Bool("check", false, "verify existing fixtures instead of writing them")
	flag.Parse()

	if *check {
		if err := verify(*dir); err != nil {
			log.Fatal(err)
		}
		log.Printf("Verified %d fixtures in %s", len(fixtures), *dir)
		return
	}
	if err := generate(*dir); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %d fixtures to %s", len(fixtures), *dir)
}

func generate(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("fixture dir create failed (%s): %w", dir, err)
	}
	for _, f := range fixtures {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.build(), 0o640); err != nil {
			return fmt.Errorf("fixture write failed (%s): %w", path, err)
		}
	}
	return nil
}

func verify(dir string) error {
	for _, f := range fixtures {
		path := filepath.Join(dir, f.name)
		got, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("fixture read failed (%s): %w", path, err)
		}
		if !bytes.Equal(got, f.build()) {
			return fmt.Errorf("fixture is stale: %s", path)
		}
	}
	return nil
}
