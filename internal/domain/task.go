package domain

import "time"

// TaskCategory is the study track a task belongs to.
type TaskCategory string

const (
	CategoryGS       TaskCategory = "GS"
	CategoryOptional TaskCategory = "Optional"
)

// GSGroups and OptionalGroups are the sub-category catalogs.
var GSGroups = []string{
	"Economy", "Polity", "Governance", "IR", "Geography", "Ecology",
	"Science", "Society", "Internal Security", "Disaster Management", "Ethics",
}

var OptionalGroups = []string{
	"Ancient", "Medieval", "Modern", "World", "Historiography",
}

// Task is a single study item. Completing it fires rewards; once completed
// it enters the spaced-repetition rotation. Revisions is append-only and
// chronologically ordered.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Category    TaskCategory `json:"category"`
	SubCategory string       `json:"sub_category"`
	Completed   bool         `json:"completed"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt time.Time    `json:"completed_at,omitempty"` // zero if not completed
	Revisions   []time.Time  `json:"revisions,omitempty"`
}
