package main

import (
	"fmt"

	"github.com/cdunford/claimharvest"
	"github.com/cdunford/claimharvest/harvest"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	entries, err := deps.Run.ReadManifest()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", claimharvest.ErrorMessage(err))
		return err
	}

	progress := func(event harvest.ProgressEvent) {
		if event.Type == harvest.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Harvester.ParsePages(deps.Ctx, entries, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", claimharvest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Parsed %d pages, %d failed\n", result.Parsed, result.Failed)
	return nil
}
