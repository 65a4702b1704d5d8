package models

import "time"

// Annotation is a comment attached to a cell.
type Annotation struct {
	// Msg is the comment text, paragraphs joined with newlines.
	Msg string `json:"msg"`
	// LastModified is nil when the document carries no valid dc:date.
	LastModified *time.Time `json:"last_modified,omitempty"`
}
