package model

import (
	"time"

	"github.com/google/uuid"
)

// TitleMaxLen is the longest title that gets stored. Longer titles are
// truncated, the column is VARCHAR(200).
const TitleMaxLen = 200

type VideoSummary struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	SourceLink  string
	SummaryText string
	CreatedAt   time.Time
}

func ClampTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= TitleMaxLen {
		return title
	}
	return string(runes[:TitleMaxLen])
}
