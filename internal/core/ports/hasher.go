package ports

// Hasher computes content digests.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashFile returns the hex digest of the file content.
	HashFile(path string) (string, error)
}
