package store

// User is a chat user. IDs are caller-supplied strings; anonymous callers
// get generated ids at the API layer.
type User struct {
	ID        string
	Metadata  string // JSON blob, "{}" when absent
	CreatedTs int64
	UpdatedTs int64
}

// UpsertUser creates a user row or refreshes its metadata.
type UpsertUser struct {
	ID       string
	Metadata string
}

type FindUser struct {
	ID string
}
