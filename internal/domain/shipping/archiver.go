package shipping

import (
	"context"
)

// Archiver stores a durable copy of an issued label outside the database.
// Archiving is best-effort; a failure must not void the issued label.
type Archiver interface {
	Archive(ctx context.Context, label *Label) error
}
