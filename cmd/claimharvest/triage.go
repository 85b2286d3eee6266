package main

import (
	"fmt"

	"github.com/cdunford/claimharvest"
)

// Run executes the triage command.
func (c *TriageCmd) Run(deps *Dependencies) error {
	entries, err := deps.Run.ReadManifest()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", claimharvest.ErrorMessage(err))
		return err
	}

	results, err := deps.Harvester.Triage(deps.Ctx, entries)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", claimharvest.ErrorMessage(err))
		return err
	}

	if err := deps.Run.WriteTriage(results); err != nil {
		return err
	}

	counts := map[claimharvest.TriageLabel]int{}
	for _, r := range results {
		counts[r.Label]++
	}
	fmt.Fprintf(deps.Stdout, "Triaged %d pages: %d FULL, %d PARTIAL, %d SHELL\n",
		len(results), counts[claimharvest.TriageFull], counts[claimharvest.TriagePartial],
		counts[claimharvest.TriageShell])
	return nil
}
