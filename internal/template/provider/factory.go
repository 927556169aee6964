package provider

import (
	"github.com/vaultcms/create-vault-cms/internal/debug"
)

// New creates the provider matching opts.ArchiveHost: a LocalProvider for
// file:// mirrors, a GitHubProvider otherwise.
func New(opts Options) (Provider, error) {
	if IsFileURL(opts.ArchiveHost) {
		root, err := ParseFileURL(opts.ArchiveHost)
		if err != nil {
			return nil, err
		}
		debug.Debug("[provider] Using local mirror at %s", root)
		return NewLocalProvider(root, opts), nil
	}

	debug.Debug("[provider] Using archive host %s", opts.ArchiveHost)
	return NewGitHubProvider(opts), nil
}
