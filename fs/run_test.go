package fs_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdunford/claimharvest"
	"github.com/cdunford/claimharvest/fs"
)

func TestRunDir_Ensure(t *testing.T) {
	t.Parallel()

	d := fs.NewRunDir(t.TempDir(), "2026-08-29")
	require.NoError(t, d.Ensure())

	for _, dir := range []string{
		d.SeedsDir(), d.RawHTMLDir(), d.TextDir(), d.ParsedDir(), d.ClaimsDir(), d.ReportsDir(),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestRunDir_Snapshots(t *testing.T) {
	t.Parallel()

	d := fs.NewRunDir(t.TempDir(), "2026-08-29")
	require.NoError(t, d.Ensure())

	htmlFile, textFile, err := d.WriteSnapshot("bpc-157", []byte("<html>body</html>"), "body")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(d.RawHTMLDir(), "bpc-157.html"), htmlFile)
	assert.Equal(t, filepath.Join(d.TextDir(), "bpc-157.md"), textFile)

	entry := &claimharvest.ManifestEntry{Slug: "bpc-157", HTMLFile: htmlFile, TextFile: textFile}

	html, err := d.ReadHTML(entry)
	require.NoError(t, err)
	assert.Equal(t, "<html>body</html>", string(html))

	text, err := d.ReadText(entry)
	require.NoError(t, err)
	assert.Equal(t, "body", text)
}

func TestRunDir_ReadHTML_NotFound(t *testing.T) {
	t.Parallel()

	d := fs.NewRunDir(t.TempDir(), "2026-08-29")
	require.NoError(t, d.Ensure())

	_, err := d.ReadHTML(&claimharvest.ManifestEntry{
		Slug:     "missing",
		HTMLFile: filepath.Join(d.RawHTMLDir(), "missing.html"),
	})
	require.Error(t, err)
	assert.Equal(t, claimharvest.ENOTFOUND, claimharvest.ErrorCode(err))
}

func TestRunDir_Manifest(t *testing.T) {
	t.Parallel()

	d := fs.NewRunDir(t.TempDir(), "2026-08-29")
	require.NoError(t, d.Ensure())

	entries := []claimharvest.ManifestEntry{
		{URL: "https://researchdosing.com/bpc-157", Slug: "bpc-157", Status: 200, Bytes: 1200, SHA256: "abc"},
		{URL: "https://researchdosing.com/tb-500", Slug: "tb-500", Status: 200, Bytes: 900, SHA256: "def"},
	}
	require.NoError(t, d.WriteManifest(entries))

	got, err := d.ReadManifest()
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestRunDir_ReadManifest_NotFound(t *testing.T) {
	t.Parallel()

	d := fs.NewRunDir(t.TempDir(), "2026-08-29")
	require.NoError(t, d.Ensure())

	_, err := d.ReadManifest()
	require.Error(t, err)
	assert.Equal(t, claimharvest.ENOTFOUND, claimharvest.ErrorCode(err))
}

func TestRunDir_SeedSet(t *testing.T) {
	t.Parallel()

	d := fs.NewRunDir(t.TempDir(), "2026-08-29")
	require.NoError(t, d.Ensure())

	set := &claimharvest.SeedSet{
		SeedURL:       "https://researchdosing.com/",
		HTTPStatus:    200,
		TotalLinks:    42,
		NumCandidates: 2,
		Candidates: []string{
			"https://researchdosing.com/bpc-157",
			"https://researchdosing.com/tb-500",
		},
	}
	require.NoError(t, d.WriteSeedSet(set))

	got, err := d.ReadSeedSet()
	require.NoError(t, err)
	assert.Equal(t, set, got)
}

func TestRunDir_WriteFailures_NilBecomesEmptyArray(t *testing.T) {
	t.Parallel()

	d := fs.NewRunDir(t.TempDir(), "2026-08-29")
	require.NoError(t, d.Ensure())
	require.NoError(t, d.WriteFailures(nil))

	b, err := os.ReadFile(d.FailuresFile())
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(b))
}

func TestRunDir_WriteTriage(t *testing.T) {
	t.Parallel()

	d := fs.NewRunDir(t.TempDir(), "2026-08-29")
	require.NoError(t, d.Ensure())

	results := []claimharvest.TriageResult{
		{
			Slug:        "bpc-157",
			URL:         "https://researchdosing.com/bpc-157",
			Bytes:       5000,
			Status:      200,
			TokenTotal:  1500,
			TokenUnique: 500,
			Label:       claimharvest.TriageFull,
		},
		{
			Slug:       "empty",
			URL:        "https://researchdosing.com/empty",
			Status:     200,
			TokenTotal: 10,
			Label:      claimharvest.TriageShell,
		},
	}
	require.NoError(t, d.WriteTriage(results))

	f, err := os.Open(d.TriageCSVFile())
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "slug", rows[0][0])
	assert.Equal(t, "label", rows[0][len(rows[0])-1])
	assert.Equal(t, "bpc-157", rows[1][0])
	assert.Equal(t, "FULL", rows[1][len(rows[1])-1])
	assert.Equal(t, "SHELL", rows[2][len(rows[2])-1])

	_, err = os.Stat(d.TriageFile())
	assert.NoError(t, err)
}
