package provider

import (
	"context"
)

// Provider abstracts the remote host that serves template archives and the
// preset listing.
type Provider interface {
	// ArchiveURL returns the download URL of the archive holding the given
	// template. An empty template selects the base repository.
	ArchiveURL(template string) string

	// Fetch downloads url into dest, following redirects.
	// dest is created or truncated; it never survives a failed download.
	Fetch(ctx context.Context, url, dest string) error

	// ListTemplates returns the preset names offered by the host.
	// It never fails; a fallback catalog is returned instead.
	ListTemplates(ctx context.Context) []string
}
