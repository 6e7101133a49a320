package updatecheck

// UpdateInfo contains the update status for one installed theme.
type UpdateInfo struct {
	Name       string // theme name
	CurrentVer string // stamped version, "" for legacy installs
	RemoteVer  string // registry's resolved latest version
	HasUpdate  bool   // whether the stamped version drifted
}

// CheckResult contains the result of an update check.
type CheckResult struct {
	Themes       []UpdateInfo
	HasAnyUpdate bool
	Errors       []error // non-fatal errors during check
}

// TotalUpdates returns the number of themes with updates available.
func (r *CheckResult) TotalUpdates() int {
	count := 0
	for _, info := range r.Themes {
		if info.HasUpdate {
			count++
		}
	}
	return count
}
