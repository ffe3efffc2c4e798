package model

import "encoding/json"

// WorkingHoursEntry is one element of the working-hours JSON document kept
// on trainers and gym centers.
type WorkingHoursEntry struct {
	Day       int    `json:"day"` // 0=Sunday ... 6=Saturday
	TimeRange string `json:"time_range"` // e.g. "09:00-18:00"
}

// ParseWorkingHours decodes a working-hours JSON document. An empty or
// invalid document yields an empty schedule rather than an error; the raw
// document is caller-supplied and display-only.
func ParseWorkingHours(doc string) []WorkingHoursEntry {
	if doc == "" || doc == "[]" {
		return nil
	}
	var entries []WorkingHoursEntry
	if err := json.Unmarshal([]byte(doc), &entries); err != nil {
		return nil
	}
	return entries
}

// NormalizeWorkingHours validates a caller-supplied working-hours document
// and returns a canonical form, falling back to "[]" when the document does
// not decode.
func NormalizeWorkingHours(doc string) string {
	entries := ParseWorkingHours(doc)
	if entries == nil {
		return "[]"
	}
	out, err := json.Marshal(entries)
	if err != nil {
		return "[]"
	}
	return string(out)
}
