package main

import (
	"fmt"
	"os"

	"github.com/cdunford/claimharvest"
)

// Run executes the seed command.
func (c *SeedCmd) Run(deps *Dependencies) error {
	url := c.URL
	if url == "" {
		url = deps.SeedURL
	}

	set, html, err := deps.Harvester.Seed(deps.Ctx, url)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", claimharvest.ErrorMessage(err))
		return err
	}

	if err := os.WriteFile(deps.Run.SeedSnapshotFile(), html, 0o644); err != nil {
		return err
	}
	if err := deps.Run.WriteSeedSet(set); err != nil {
		return err
	}
	if err := deps.Run.WriteTaxonomy(set.Taxonomy); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Found %d candidate compound URLs (%d links on seed page)\n",
		set.NumCandidates, set.TotalLinks)
	return nil
}
