package main

import (
	"fmt"

	"github.com/cdunford/claimharvest"
	"github.com/cdunford/claimharvest/fs"
	"github.com/cdunford/claimharvest/sqlite"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	summary, err := deps.Run.ReadSummary()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", claimharvest.ErrorMessage(err))
		return err
	}
	pages, err := fs.NewPageStore(deps.Run.ParsedDir()).ReadPages()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", claimharvest.ErrorMessage(err))
		return err
	}
	claims, err := fs.ReadClaims(deps.Run.ClaimsFile())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", claimharvest.ErrorMessage(err))
		return err
	}

	db := sqlite.NewDB(deps.DBPath)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", deps.DBPath, err)
	}
	defer db.Close()

	run := &sqlite.Run{
		ID:      summary.RunID,
		RunDate: deps.Run.Date(),
		Site:    deps.Harvester.Site,
	}
	if err := sqlite.NewRunService(db).CreateRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", claimharvest.ErrorMessage(err))
		return err
	}

	pageSvc := sqlite.NewPageService(db)
	for _, page := range pages {
		if err := pageSvc.CreatePage(deps.Ctx, run.ID, page); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", claimharvest.ErrorMessage(err))
			return err
		}
	}

	claimSvc := sqlite.NewClaimService(db)
	for i := range claims {
		if err := claimSvc.CreateClaim(deps.Ctx, run.ID, &claims[i]); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", claimharvest.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Indexed run %s: %d pages, %d claims\n",
		run.ID, len(pages), len(claims))

	counts, err := claimSvc.CountByType(deps.Ctx, run.ID)
	if err != nil {
		return err
	}
	for _, tc := range counts {
		fmt.Fprintf(deps.Stdout, "  %-20s %d\n", tc.Type, tc.Count)
	}
	return nil
}
