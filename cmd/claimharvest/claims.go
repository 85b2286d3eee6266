package main

import (
	"fmt"

	"github.com/cdunford/claimharvest"
	"github.com/cdunford/claimharvest/extract"
	"github.com/cdunford/claimharvest/fs"
	"github.com/google/uuid"
)

// Run executes the claims command.
func (c *ClaimsCmd) Run(deps *Dependencies) error {
	log, err := fs.OpenClaimLog(deps.Run.ClaimsFile())
	if err != nil {
		return err
	}

	claims, err := deps.Harvester.ExtractClaims(deps.Ctx, log)
	if err != nil {
		log.Close()
		fmt.Fprintf(deps.Stderr, "error: %s\n", claimharvest.ErrorMessage(err))
		return err
	}
	if err := log.Close(); err != nil {
		return err
	}

	summary := extract.Summarize(claims, uuid.New().String(), deps.Run.Date(), deps.Run.ClaimsFile())
	if err := deps.Run.WriteSummary(summary); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Extracted %d claims\n", summary.ClaimsTotal)
	for _, tc := range summary.ByType {
		fmt.Fprintf(deps.Stdout, "  %-20s %d\n", tc.Type, tc.Count)
	}
	return nil
}
