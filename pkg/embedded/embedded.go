// Package embedded provides embedded static assets for the application.
package embedded

import (
	"embed"
)

// Files contains the dashboard frontend (frontend/dist), served directly
// via HTTP from the Go binary.
//
//go:embed frontend/dist
var Files embed.FS
