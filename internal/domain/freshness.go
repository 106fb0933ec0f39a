package domain

import "time"

// Decision is the result of the freshness check for one repository.
type Decision struct {
	Generate bool
	Reason   string
}

const (
	ReasonArchived      = "repository is archived"
	ReasonEmpty         = "repository is empty"
	ReasonMissingReadme = "no README.md found"
	ReasonRecentCommits = "recent commits detected"
	ReasonUpToDate      = "no recent changes, README is up-to-date"
)

// Decide reports whether a README should be (re)generated for repo.
// readmeSHA is empty when no README exists; committedToday tells whether at
// least one commit landed since local midnight.
func Decide(repo Repository, readmeSHA string, committedToday bool) Decision {
	switch {
	case repo.Archived:
		return Decision{Reason: ReasonArchived}
	case repo.Size == 0:
		return Decision{Reason: ReasonEmpty}
	case readmeSHA == "":
		return Decision{Generate: true, Reason: ReasonMissingReadme}
	case committedToday:
		return Decision{Generate: true, Reason: ReasonRecentCommits}
	default:
		return Decision{Reason: ReasonUpToDate}
	}
}

// StartOfDay returns midnight of the day containing t, in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
