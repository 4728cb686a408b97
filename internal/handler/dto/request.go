package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/mtlprog/taskboard/internal/domain"
)

// CreateTaskRequest represents the request body for POST /task/create.
// Stage and priority are case-insensitive. Assets may be filenames or records;
// a non-array assets value is read as no assets.
type CreateTaskRequest struct {
	Title    string           `json:"title"`
	Team     []string         `json:"team"`
	Stage    string           `json:"stage"`
	Date     string           `json:"date"`
	Priority string           `json:"priority"`
	Assets   domain.RawAssets `json:"assets" swaggertype:"array,object"`
}

// UpdateTaskRequest represents the request body for PUT /task/update/{id}.
type UpdateTaskRequest CreateTaskRequest

// PostActivityRequest represents the request body for POST /task/activity/{id}.
type PostActivityRequest struct {
	Type     string `json:"type"`
	Activity string `json:"activity"`
}

// CreateSubTaskRequest represents the request body for PUT /task/create-subtask/{id}.
type CreateSubTaskRequest struct {
	Title string `json:"title"`
	Tag   string `json:"tag"`
	Date  string `json:"date"`
}

// dateLayouts are the accepted due date formats, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseDate parses a due date. An empty value yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
}
