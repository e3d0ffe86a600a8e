package fallback

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/crudkeeper/internal/filex"
)

const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Open returns the Repository for driver stored at path, creating the
// parent directory when needed.
func Open(ctx context.Context, driver, path string) (Repository, error) {
	if driver == DriverSQLite || driver == DriverBolt {
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, err
		}
	}

	switch driver {
	case DriverSQLite:
		return OpenSQLite(ctx, path)
	case DriverBolt:
		return OpenBolt(path)
	default:
		return nil, fmt.Errorf("unknown fallback driver %q", driver)
	}
}
