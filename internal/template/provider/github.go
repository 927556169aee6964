package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/vaultcms/create-vault-cms/internal/debug"
)

const (
	// maxRedirects bounds the number of 301/302 hops followed by Fetch.
	maxRedirects = 10

	defaultUserAgent = "vault-cms-installer"
)

// FallbackTemplates is the catalog used when the listing endpoint cannot be read.
var FallbackTemplates = []string{"starlight", "slate", "chiri"}

// Options configures a GitHubProvider.
type Options struct {
	// ArchiveHost is the scheme and host serving archives, e.g. https://github.com.
	ArchiveHost string
	// APIURL is the GitHub API base URL.
	APIURL string
	// Owner is the account owning both repositories.
	Owner string
	// BaseRepo is the repository installed when no template is selected.
	BaseRepo string
	// PresetsRepo is the repository whose top-level directories are templates.
	PresetsRepo string
	// Branch is the branch whose archive is downloaded.
	Branch string
	// UserAgent is sent with every request.
	UserAgent string
	// Token is the optional GitHub token.
	Token string
	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// GitHubProvider implements Provider for GitHub-hosted repositories.
type GitHubProvider struct {
	// HTTPClient is the HTTP client for all requests. Its redirect policy
	// must return the redirect response itself so Fetch can follow it.
	HTTPClient *http.Client

	opts Options
}

// NewGitHubProvider creates a new GitHub provider.
func NewGitHubProvider(opts Options) *GitHubProvider {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	opts.ArchiveHost = strings.TrimSuffix(opts.ArchiveHost, "/")
	opts.APIURL = strings.TrimSuffix(opts.APIURL, "/")

	// Timeout bounds the wait for response headers, not the body. Listing
	// applies it to the whole call.
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = opts.Timeout

	return &GitHubProvider{
		HTTPClient: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		opts: opts,
	}
}

// ArchiveURL returns the branch archive URL for the repository serving template.
// GitHub archive URL: https://github.com/owner/repo/archive/refs/heads/master.zip
func (p *GitHubProvider) ArchiveURL(template string) string {
	repo := p.opts.BaseRepo
	if template != "" {
		repo = p.opts.PresetsRepo
	}
	return fmt.Sprintf("%s/%s/%s/archive/refs/heads/%s.zip",
		p.opts.ArchiveHost, p.opts.Owner, repo, p.opts.Branch)
}

// ListURL returns the contents endpoint of the presets repository.
func (p *GitHubProvider) ListURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/contents", p.opts.APIURL, p.opts.Owner, p.opts.PresetsRepo)
}

// Fetch downloads url to dest. 301 and 302 responses are followed by
// re-issuing the request at the Location header; any other non-200 status
// fails with a ProviderError carrying the status code. The token is only
// sent while the request stays on the host of url.
func (p *GitHubProvider) Fetch(ctx context.Context, url, dest string) error {
	debug.Debug("[provider] Fetching %s -> %s", url, dest)

	current := url
	origin := ""
	auth := true
	for hop := 0; ; hop++ {
		resp, err := p.get(ctx, current, auth)
		if err != nil {
			return NewFetchError(current, err)
		}
		if hop == 0 {
			origin = resp.Request.URL.Host
		}

		switch resp.StatusCode {
		case http.StatusOK:
			err := p.save(resp, current, dest)
			resp.Body.Close()
			return err
		case http.StatusMovedPermanently, http.StatusFound:
			loc, err := resp.Location()
			resp.Body.Close()
			if err != nil {
				return NewBadRedirectError(current, err)
			}
			if hop >= maxRedirects {
				return NewRedirectError(current, fmt.Errorf("stopped after %d redirects", maxRedirects))
			}
			debug.Debug("[provider] Redirect %d -> %s", resp.StatusCode, loc)
			current = loc.String()
			auth = loc.Host == origin
		default:
			resp.Body.Close()
			debug.Debug("[provider] Unexpected status %d for %s", resp.StatusCode, current)
			return NewStatusError(current, resp.StatusCode)
		}
	}
}

// save streams the response body into dest, removing dest if the copy fails.
func (p *GitHubProvider) save(resp *http.Response, url, dest string) error {
	f, err := os.Create(dest)
	if err != nil {
		return NewWriteError(url, err)
	}

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		f.Close()
		os.Remove(dest)
		return NewFetchError(url, fmt.Errorf("failed to read body: %w", err))
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return NewWriteError(url, err)
	}

	debug.Debug("[provider] Saved %d bytes to %s", n, dest)
	return nil
}

// contentEntry is one element of the GitHub contents API response.
type contentEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ListTemplates queries the presets repository listing and returns its
// visible directories. Any failure yields FallbackTemplates.
func (p *GitHubProvider) ListTemplates(ctx context.Context) []string {
	url := p.ListURL()
	debug.Debug("[provider] Listing templates from %s", url)

	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	resp, err := p.get(ctx, url, true)
	if err != nil {
		debug.Debug("[provider] Listing failed, using fallback: %v", err)
		return fallback()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		debug.Debug("[provider] Listing returned status %d, using fallback", resp.StatusCode)
		return fallback()
	}

	var entries []contentEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		debug.Debug("[provider] Listing response unparseable, using fallback: %v", err)
		return fallback()
	}

	return templateNames(entries)
}

// templateNames keeps directory entries that are not hidden.
func templateNames(entries []contentEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type != "dir" || strings.HasPrefix(e.Name, ".") {
			continue
		}
		names = append(names, e.Name)
	}
	return names
}

func fallback() []string {
	return append([]string(nil), FallbackTemplates...)
}

// get issues a GET, adding the token header when auth is set.
func (p *GitHubProvider) get(ctx context.Context, url string, auth bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", p.opts.UserAgent)
	if auth && p.opts.Token != "" {
		req.Header.Set("Authorization", "token "+p.opts.Token)
	}

	return p.HTTPClient.Do(req)
}
