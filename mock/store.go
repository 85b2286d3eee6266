package mock

import "github.com/cdunford/claimharvest"

var _ claimharvest.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of claimharvest.SnapshotStore.
type SnapshotStore struct {
	WriteSnapshotFn func(slug string, html []byte, text string) (string, string, error)
	ReadHTMLFn      func(entry *claimharvest.ManifestEntry) ([]byte, error)
	ReadTextFn      func(entry *claimharvest.ManifestEntry) (string, error)
}

func (s *SnapshotStore) WriteSnapshot(slug string, html []byte, text string) (string, string, error) {
	return s.WriteSnapshotFn(slug, html, text)
}

func (s *SnapshotStore) ReadHTML(entry *claimharvest.ManifestEntry) ([]byte, error) {
	return s.ReadHTMLFn(entry)
}

func (s *SnapshotStore) ReadText(entry *claimharvest.ManifestEntry) (string, error) {
	return s.ReadTextFn(entry)
}

var _ claimharvest.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of claimharvest.PageStore.
type PageStore struct {
	WritePageFn func(doc *claimharvest.PageDocument) error
	ReadPagesFn func() ([]*claimharvest.PageDocument, error)
}

func (s *PageStore) WritePage(doc *claimharvest.PageDocument) error {
	return s.WritePageFn(doc)
}

func (s *PageStore) ReadPages() ([]*claimharvest.PageDocument, error) {
	return s.ReadPagesFn()
}

var _ claimharvest.ClaimLog = (*ClaimLog)(nil)

// ClaimLog is a mock implementation of claimharvest.ClaimLog.
type ClaimLog struct {
	WriteClaimFn func(claim *claimharvest.Claim) error
	CloseFn      func() error
}

func (l *ClaimLog) WriteClaim(claim *claimharvest.Claim) error {
	return l.WriteClaimFn(claim)
}

func (l *ClaimLog) Close() error {
	if l.CloseFn == nil {
		return nil
	}
	return l.CloseFn()
}
