package alert

// Stats is the summary projection over a merged alert list.
type Stats struct {
	Total          int `json:"total"`
	Critical       int `json:"critical"`
	High           int `json:"high"`
	Medium         int `json:"medium"`
	Low            int `json:"low"`
	Active         int `json:"active"`
	Unacknowledged int `json:"unacknowledged"`
	Unassigned     int `json:"unassigned"`
	Overdue        int `json:"overdue"`

	BySource SourceCounts `json:"bySource"`
}

type SourceCounts struct {
	Remote int `json:"remote"`
	Local  int `json:"local"`
}
