package registry

// Vendor is the registry namespace that holds Lumo theme packages.
const Vendor = "lumo-themes"

// UnstableVersion is the registry's floating development pseudo-version.
// It is never selected as "latest".
const UnstableVersion = "dev-master"

// Maintainer identifies one package maintainer.
type Maintainer struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Homepage string `json:"homepage,omitempty"`
}

// Downloads is the registry's download-count structure.
type Downloads struct {
	Total   int `json:"total"`
	Monthly int `json:"monthly"`
	Daily   int `json:"daily"`
}

// ThemeMetadata is the normalized result of a per-package registry
// lookup. Immutable once fetched; re-fetched only on cache expiry.
type ThemeMetadata struct {
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Repository      string       `json:"repository"`
	Maintainers     []Maintainer `json:"maintainers"`
	LatestVersion   string       `json:"latestVersion"`
	SourceReference string       `json:"sourceReference"`
	DownloadURL     string       `json:"downloadUrl"`
	Downloads       Downloads    `json:"downloads"`
}

// packageDoc mirrors the registry's per-package JSON document.
type packageDoc struct {
	Package struct {
		Name        string                 `json:"name"`
		Description string                 `json:"description"`
		Repository  string                 `json:"repository"`
		Downloads   Downloads              `json:"downloads"`
		Maintainers []Maintainer           `json:"maintainers"`
		Versions    map[string]versionInfo `json:"versions"`
	} `json:"package"`
}

// versionInfo is the per-version record inside a package document.
type versionInfo struct {
	Source struct {
		Reference string `json:"reference"`
	} `json:"source"`
}
