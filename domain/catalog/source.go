package catalog

import (
	"fmt"
	"os"

	"gamestats/domain/core"
)

// SourceKey identifies one version of an input dataset. Two keys are equal
// when both the path and the modification signature match.
type SourceKey struct {
	Path      string
	Signature string
}

// String returns "path@signature".
func (k SourceKey) String() string {
	return k.Path + "@" + k.Signature
}

// SourceKeyForFile keys a file by path, size and modification time.
func SourceKeyForFile(path string) (SourceKey, error) {
	info, err := os.Stat(path)
	if err != nil {
		return SourceKey{}, fmt.Errorf("stat dataset %s: %w", path, err)
	}
	return SourceKey{
		Path:      path,
		Signature: fmt.Sprintf("%d-%d", info.Size(), info.ModTime().UnixNano()),
	}, nil
}

// SourceKeyForContent keys in-memory content by its SHA-256.
func SourceKeyForContent(name string, data []byte) SourceKey {
	return SourceKey{Path: name, Signature: core.NewHash(data).String()}
}
