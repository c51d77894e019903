package port

import "makedoc2rst/internal/domain"

// ManifestStore remembers what each source file was last converted into.
type ManifestStore interface {
	PutEntry(entry domain.ManifestEntry) error

	GetEntry(sourcePath string) (domain.ManifestEntry, bool, error)

	DeleteEntry(sourcePath string) error

	ListEntries() ([]domain.ManifestEntry, error)

	Close() error
}
