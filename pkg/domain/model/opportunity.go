package model

import (
	"strings"
	"time"

	"github.com/pathlight-lab/pathlight/pkg/domain/types"
)

// DeadlineUnspecified is the sentinel value for records without a deadline
const DeadlineUnspecified = "unspecified"

// deadlineLayouts are the accepted free-form deadline formats, tried in order
var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"02 Jan 2006",
}

// Opportunity is an immutable snapshot of a scholarship/job/program
// listing from the document store. The engine holds read-only copies
// for the duration of one retrieval.
type Opportunity struct {
	ID          types.OpportunityID
	Title       string
	Provider    string
	Description string
	Category    string
	Tags        []string
	Deadline    string // free-form date or DeadlineUnspecified
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Normalize applies field defaults once, at the adapter boundary,
// so call sites never need ad-hoc fallbacks.
func (o *Opportunity) Normalize() {
	if o.Title == "" {
		o.Title = "Untitled opportunity"
	}
	if o.Provider == "" {
		o.Provider = "Unknown provider"
	}
	if o.Deadline == "" {
		o.Deadline = DeadlineUnspecified
	}
	if o.Tags == nil {
		o.Tags = []string{}
	}
}

// SearchableText returns the lowercase concatenation of all searchable
// fields of the record.
func (o *Opportunity) SearchableText() string {
	parts := []string{o.Title, o.Provider, o.Description, o.Category}
	parts = append(parts, o.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// DeadlineTime parses the free-form deadline field. The second return
// value is false when the deadline is missing, the sentinel value, or
// unparseable.
func (o *Opportunity) DeadlineTime() (time.Time, bool) {
	raw := strings.TrimSpace(o.Deadline)
	if raw == "" || strings.EqualFold(raw, DeadlineUnspecified) {
		return time.Time{}, false
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
