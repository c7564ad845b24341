package domain

// Status is the kanban lifecycle state of a JobApplication. Transitions are
// intentionally unrestricted: any status may move to any other status.
type Status string

const (
	StatusInterested   Status = "interested"
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusRejected     Status = "rejected"
	StatusOffered      Status = "offered"
	StatusWithdrawn    Status = "withdrawn"
)

var statusLabels = map[Status]string{
	StatusInterested:   "Interested",
	StatusApplied:      "Applied",
	StatusInterviewing: "Interviewing",
	StatusRejected:     "Rejected",
	StatusOffered:      "Offered",
	StatusWithdrawn:    "Withdrawn",
}

// Statuses returns every known status in board order.
func Statuses() []Status {
	return []Status{
		StatusInterested,
		StatusApplied,
		StatusInterviewing,
		StatusRejected,
		StatusOffered,
		StatusWithdrawn,
	}
}

// Valid reports whether s is a known application status.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human-readable form used in timeline descriptions.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}
