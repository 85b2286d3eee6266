package main

import (
	"fmt"

	"github.com/cdunford/claimharvest"
	"github.com/cdunford/claimharvest/harvest"
)

// Run executes the snapshot command.
func (c *SnapshotCmd) Run(deps *Dependencies) error {
	set, err := deps.Run.ReadSeedSet()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", claimharvest.ErrorMessage(err))
		return err
	}

	progress := func(event harvest.ProgressEvent) {
		switch event.Type {
		case harvest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Fetching %d URLs\n", event.Total)
		case harvest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Harvester.Snapshot(deps.Ctx, set.Candidates, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", claimharvest.ErrorMessage(err))
		return err
	}

	if err := deps.Run.WriteManifest(result.Manifest); err != nil {
		return err
	}
	if err := deps.Run.WriteFailures(result.Failures); err != nil {
		return err
	}

	var bytes int
	for _, entry := range result.Manifest {
		bytes += entry.Bytes
	}
	fmt.Fprintf(deps.Stdout, "Saved %d pages (%s), %d failures\n",
		len(result.Manifest), harvest.FormatBytes(bytes), len(result.Failures))
	return nil
}
