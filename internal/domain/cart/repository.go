package cart

import "context"

// Gateway is the remote cart kept by the backend for signed-in users.
// Every mutation is a single increment, decrement or delete.
type Gateway interface {
	Add(ctx context.Context, token, itemID string) error
	Remove(ctx context.Context, token, itemID string) error
	Delete(ctx context.Context, token, itemID string) error
	Clear(ctx context.Context, token string) error
	Fetch(ctx context.Context, token string) ([]Line, error)
}

// Store keeps the guest cart on this device between runs
type Store interface {
	LoadCart(ctx context.Context) ([]Line, error)
	SaveCart(ctx context.Context, lines []Line) error
}

// NotesStore keeps item notes of a signed-in cart on this device. The
// backend cart holds quantities only.
type NotesStore interface {
	LoadNotes(ctx context.Context) (map[string]string, error)
	SaveNotes(ctx context.Context, notes map[string]string) error
}
