package models

// FailedDeletion records a path that cleanup could not remove.
type FailedDeletion struct {
	Path string `json:"path"`
	Err  string `json:"error"`
}

// CleanupReport lists what a cleanup pass removed and what it could not.
type CleanupReport struct {
	Directory string           `json:"directory,omitempty"`
	Removed   []string         `json:"removed,omitempty"`
	Failed    []FailedDeletion `json:"failed,omitempty"`
}

// OK reports whether every deletion succeeded.
func (r CleanupReport) OK() bool {
	return len(r.Failed) == 0
}

// Merge appends the entries of other to r.
func (r *CleanupReport) Merge(other CleanupReport) {
	r.Removed = append(r.Removed, other.Removed...)
	r.Failed = append(r.Failed, other.Failed...)
}
