package fs

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"sync"

	"github.com/cdunford/claimharvest"
)

// Ensure ClaimLog implements claimharvest.ClaimLog at compile time.
var _ claimharvest.ClaimLog = (*ClaimLog)(nil)

// ClaimLog appends claims to a JSONL file, one record per line.
// Writes are serialized so concurrent extractors never interleave lines.
type ClaimLog struct {
	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer
	n  int
}

// OpenClaimLog creates (or truncates) the claim log at path.
func OpenClaimLog(path string) (*ClaimLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &ClaimLog{f: f, w: bufio.NewWriter(f)}, nil
}

func (l *ClaimLog) WriteClaim(claim *claimharvest.Claim) error {
	if err := claim.Validate(); err != nil {
		return err
	}
	b, err := json.Marshal(claim)
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.w.Write(b); err != nil {
		return err
	}
	if err := l.w.WriteByte('\n'); err != nil {
		return err
	}
	l.n++
	return nil
}

// Count returns the number of claims written so far.
func (l *ClaimLog) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.n
}

// Close flushes buffered claims and closes the underlying file.
func (l *ClaimLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.w.Flush(); err != nil {
		l.f.Close()
		return err
	}
	return l.f.Close()
}

// ReadClaims loads every claim from a JSONL claim log, in file order.
func ReadClaims(path string) ([]claimharvest.Claim, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, claimharvest.Errorf(claimharvest.ENOTFOUND, "no claim log at %s; run claims first", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var claims []claimharvest.Claim
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var claim claimharvest.Claim
		if err := json.Unmarshal(line, &claim); err != nil {
			return nil, claimharvest.Errorf(claimharvest.EINVALID, "malformed claim log: %v", err)
		}
		claims = append(claims, claim)
	}
	return claims, sc.Err()
}
