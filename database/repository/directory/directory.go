package directoryRepo

import "errors"

// ErrNotFound is returned when no directory entry matches the given id.
var ErrNotFound = errors.New("directory entry not found")

// Entry is the slice of a platform user this core needs: a display name and
// a tenant. User management itself lives outside this system.
type Entry struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	CompanyID string `bson:"company_id" json:"company_id"`
}

// DirectoryRepository resolves known staff and client identities to display
// names, used only to populate denormalized name fields at creation time.
type DirectoryRepository interface {
	Lookup(id string) (*Entry, error)
}
