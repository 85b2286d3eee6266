package main

import (
	"context"
	"io"

	"github.com/cdunford/claimharvest/fs"
	"github.com/cdunford/claimharvest/harvest"
)

// Dependencies holds the wired services and configuration for command
// execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Run       *fs.RunDir
	Harvester *harvest.Harvester
	SeedURL   string
	DBPath    string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Site        string  `default:"researchdosing.com" help:"Domain to audit"`
	Brand       string  `default:"Research Dosing" help:"Site brand excluded from headings"`
	Data        string  `help:"Data directory (default $CLAIMHARVEST_DATA or ./data)"`
	Date        string  `help:"Run date YYYY-MM-DD (default today, UTC)"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64 `name:"rps" default:"1" help:"Requests per second per domain"`

	Seed     SeedCmd     `cmd:"" help:"Discover candidate compound URLs from the seed page"`
	Snapshot SnapshotCmd `cmd:"" help:"Fetch seed URLs and store raw HTML and text snapshots"`
	Triage   TriageCmd   `cmd:"" help:"Score snapshots as SHELL, PARTIAL, or FULL"`
	Parse    ParseCmd    `cmd:"" help:"Parse snapshots into section trees"`
	Claims   ClaimsCmd   `cmd:"" help:"Extract typed claims from parsed pages"`
	Index    IndexCmd    `cmd:"" help:"Index a completed run into SQLite"`
	Run      RunCmd      `cmd:"" help:"Run every stage in order"`
}

// SeedCmd is the "seed" subcommand.
type SeedCmd struct {
	URL string `help:"Seed page URL (default https://<site>/)"`
}

// SnapshotCmd is the "snapshot" subcommand.
type SnapshotCmd struct{}

// TriageCmd is the "triage" subcommand.
type TriageCmd struct{}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct{}

// ClaimsCmd is the "claims" subcommand.
type ClaimsCmd struct{}

// IndexCmd is the "index" subcommand.
type IndexCmd struct{}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URL string `help:"Seed page URL (default https://<site>/)"`
}
