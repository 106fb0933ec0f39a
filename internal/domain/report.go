package domain

// Action is what a documentation pass did with a repository.
type Action string

const (
	ActionSkippedArchived Action = "skipped-archived"
	ActionSkippedEmpty    Action = "skipped-empty"
	ActionUpToDate        Action = "up-to-date"
	ActionNoFiles         Action = "no-files"
	ActionCreated         Action = "created"
	ActionUpdated         Action = "updated"
	ActionFailed          Action = "failed"
)

// Outcome records the result for one repository.
type Outcome struct {
	Repository  string `json:"repository"`
	Action      Action `json:"action"`
	Files       int    `json:"files"`
	PromptBytes int    `json:"prompt_bytes"`
}

// Report collects the outcomes of a pass in processing order.
type Report struct {
	Login    string    `json:"login"`
	Outcomes []Outcome `json:"outcomes"`
}

// Count returns how many repositories ended with action.
func (r *Report) Count(action Action) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Action == action {
			n++
		}
	}
	return n
}
