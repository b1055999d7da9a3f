package store

import (
	"fmt"
)

// NewStore constructs a Store by catalog source: "builtin" or "file".
// For the file source, provide the catalog path in path; for builtin, path is ignored.
func NewStore(kind, path string) (*Store, error) {
	switch kind {
	case "builtin", "default", "":
		return DefaultCatalog().Build()
	case "file":
		if path == "" {
			return nil, fmt.Errorf("catalog path required for file catalog")
		}
		c, err := LoadCatalogFile(path)
		if err != nil {
			return nil, err
		}
		return c.Build()
	default:
		return nil, fmt.Errorf("unknown catalog kind: %s", kind)
	}
}
