// Package registry fetches theme metadata and listings from the remote
// package registry and writes results through the metadata cache.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/lumocms/themehub/internal/cache"
	"github.com/lumocms/themehub/internal/version"
)

// MetadataTTL bounds how long registry-derived cache entries live.
const MetadataTTL = 900 * time.Second

// availableKey is the fixed cache key for the availability listing.
const availableKey = "registry.available"

var (
	// ErrRemoteUnavailable reports a network or transport failure
	// talking to the registry. Never retried by the client; a failed
	// fetch is always reported, never papered over with stale data.
	ErrRemoteUnavailable = errors.New("theme registry unavailable")

	// ErrMetadataMalformed reports a registry response missing the
	// expected version/maintainer structure.
	ErrMetadataMalformed = errors.New("theme registry metadata malformed")
)

// Client talks to the remote package registry over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Cache
	group   singleflight.Group
}

// NewClient creates a registry client rooted at baseURL, caching
// results in c.
func NewClient(baseURL string, c *cache.Cache) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   c,
	}
}

// FetchAvailable returns the registry's raw theme listing document.
// The result is cached under a fixed key for MetadataTTL.
func (c *Client) FetchAvailable() (json.RawMessage, error) {
	if v, ok := c.cache.Get(availableKey); ok {
		if listing, ok := v.(json.RawMessage); ok {
			return listing, nil
		}
	}

	v, err, _ := c.group.Do(availableKey, func() (any, error) {
		url := fmt.Sprintf("%s/packages/list.json?vendor=%s", c.baseURL, Vendor)
		body, err := c.get(url)
		if err != nil {
			return nil, err
		}

		if !json.Valid(body) {
			return nil, fmt.Errorf("%w: listing is not valid JSON", ErrRemoteUnavailable)
		}

		listing := json.RawMessage(body)
		c.cache.Set(availableKey, listing, MetadataTTL)
		return listing, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(json.RawMessage), nil
}

// FetchDetails returns normalized metadata for one theme, cached per
// name for MetadataTTL.
func (c *Client) FetchDetails(name string) (*ThemeMetadata, error) {
	key := "registry.details." + name

	if v, ok := c.cache.Get(key); ok {
		if meta, ok := v.(*ThemeMetadata); ok {
			return meta, nil
		}
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		url := fmt.Sprintf("%s/packages/%s/%s.json", c.baseURL, Vendor, name)
		body, err := c.get(url)
		if err != nil {
			return nil, err
		}

		var doc packageDoc
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
		}

		meta, err := normalize(name, &doc)
		if err != nil {
			return nil, err
		}

		c.cache.Set(key, meta, MetadataTTL)
		return meta, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*ThemeMetadata), nil
}

// LatestVersion resolves the registry's latest version string for a
// theme. Satisfies version.LatestSource.
func (c *Client) LatestVersion(name string) (string, error) {
	meta, err := c.FetchDetails(name)
	if err != nil {
		return "", err
	}
	return meta.LatestVersion, nil
}

// Invalidate drops the cached entries for one theme and the listing.
func (c *Client) Invalidate(name string) {
	c.cache.Delete("registry.details." + name)
	c.cache.Delete(availableKey)
}

func (c *Client) get(url string) ([]byte, error) {
	resp, err := c.http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrRemoteUnavailable, url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	return body, nil
}

// normalize selects the latest version and flattens the package
// document into ThemeMetadata.
func normalize(name string, doc *packageDoc) (*ThemeMetadata, error) {
	pkg := &doc.Package

	if len(pkg.Versions) == 0 {
		return nil, fmt.Errorf("%w: package %s has no versions", ErrMetadataMalformed, name)
	}
	if len(pkg.Maintainers) == 0 {
		return nil, fmt.Errorf("%w: package %s has no maintainers", ErrMetadataMalformed, name)
	}

	latest, ok := latestVersion(pkg.Versions)
	if !ok {
		return nil, fmt.Errorf("%w: package %s has no stable version", ErrMetadataMalformed, name)
	}

	return &ThemeMetadata{
		Name:            name,
		Description:     pkg.Description,
		Repository:      pkg.Repository,
		Maintainers:     pkg.Maintainers,
		LatestVersion:   latest,
		SourceReference: pkg.Versions[latest].Source.Reference,
		DownloadURL:     fmt.Sprintf("%s/archive/%s.zip", pkg.Repository, latest),
		Downloads:       pkg.Downloads,
	}, nil
}

// latestVersion picks the version with the greatest numeric key after
// excluding the unstable pseudo-version. The digit-stripping ordering
// is inherited from the upstream registry and kept as-is; see
// version.NumericKey.
func latestVersion(versions map[string]versionInfo) (string, bool) {
	var (
		best    string
		bestKey uint64
		found   bool
	)

	for v := range versions {
		if v == UnstableVersion {
			continue
		}
		key, ok := version.NumericKey(v)
		if !ok {
			continue
		}
		if !found || key > bestKey {
			best = v
			bestKey = key
			found = true
		}
	}

	return best, found
}
