package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/heroscrape"
	"github.com/fwojciec/heroscrape/catalog"
)

// Run executes the catalog command.
func (c *CatalogCmd) Run(deps *Dependencies) error {
	in := c.In
	if in == "" {
		in = deps.Settings.OutputDir
	}
	if c.Skill < 1 {
		err := heroscrape.Errorf(heroscrape.EINVALID, "skill number must be at least 1")
		fmt.Fprintf(deps.Stderr, "error: %s\n", heroscrape.ErrorMessage(err))
		return err
	}
	deps.Catalog.Skill = c.Skill

	entries, err := deps.Catalog.Build(deps.Ctx, in)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", heroscrape.ErrorMessage(err))
		return err
	}

	out := c.Out
	if out == "" {
		out = catalog.DefaultOutputName(c.Skill)
	}
	if out == "-" {
		return catalog.Write(deps.Stdout, entries)
	}

	if err := writeCatalog(out, entries); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Catalogued %d heroes into %s\n", len(entries), out)
	return nil
}

func writeCatalog(path string, entries []catalog.Entry) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return catalog.Write(f, entries)
}
