package main

// Run executes every pipeline stage in order.
func (c *RunCmd) Run(deps *Dependencies) error {
	seed := &SeedCmd{URL: c.URL}
	if err := seed.Run(deps); err != nil {
		return err
	}
	if err := (&SnapshotCmd{}).Run(deps); err != nil {
		return err
	}
	if err := (&TriageCmd{}).Run(deps); err != nil {
		return err
	}
	if err := (&ParseCmd{}).Run(deps); err != nil {
		return err
	}
	if err := (&ClaimsCmd{}).Run(deps); err != nil {
		return err
	}
	return (&IndexCmd{}).Run(deps)
}
