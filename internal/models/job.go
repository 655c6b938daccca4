package models

import (
	"fmt"
	"strings"
	"time"
)

type Job struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Salary      string `json:"salary,omitempty"`
	JobType     string `json:"jobType,omitempty"`
	Status      string `json:"status,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// JobPage is the paged listing payload of GET /jobs.
type JobPage struct {
	Content       []Job `json:"content"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// PostedOn renders a backend timestamp as "Jan 2nd, 2006". Unparseable
// values come back unchanged.
func PostedOn(createdAt string) string {
	createdAt = strings.TrimSpace(createdAt)
	if createdAt == "" {
		return ""
	}
	for _, layout := range createdAtLayouts {
		ts, err := time.Parse(layout, createdAt)
		if err != nil {
			continue
		}
		return fmt.Sprintf("%s %d%s, %d", ts.Format("Jan"), ts.Day(), ordinalSuffix(ts.Day()), ts.Year())
	}
	return createdAt
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
