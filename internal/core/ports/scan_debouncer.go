package ports

import "context"

// ScanDebouncer drops a code that the same operator presents again within a
// short window, as happens when a camera reads one QR on several frames.
type ScanDebouncer interface {
	// SeenRecently records the scan and reports whether it is a repeat.
	// Implementations must answer false when they cannot tell.
	SeenRecently(ctx context.Context, operatorID, code string) bool
}
