package store

import "time"

// Task statuses. Progress and status are independently settable; nothing
// enforces a correlation between the two.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
	StatusDone       = "done"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Requirement categories.
const (
	CategoryRequirement = "requirement"
	CategoryGuideline   = "guideline"
	CategoryReference   = "reference"
)

// Attachment is an inline-encoded file payload carried on a record. The
// three fields are either all present or all absent.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"` // "image" or "file"
	Data string `json:"data"` // base64 data URL
}

func (a Attachment) Empty() bool {
	return a.Name == "" && a.Type == "" && a.Data == ""
}

// Complete reports whether the all-or-none invariant holds.
func (a Attachment) Complete() bool {
	return a.Empty() || (a.Name != "" && a.Type != "" && a.Data != "")
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Assignee    string     `json:"assignee"` // member name by value, not id
	Role        string     `json:"role"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Deadline    string     `json:"deadline"` // 2006-01-02
	Progress    int        `json:"progress"` // 0..100
	Issue       string     `json:"issue"`
	Attachment  Attachment `json:"attachment,omitzero"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type Requirement struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Category   string     `json:"category"`
	Content    string     `json:"content"`
	Link       string     `json:"link,omitempty"`
	Attachment Attachment `json:"attachment,omitzero"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type MeetingLog struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Date       string     `json:"date"` // 2006-01-02
	Attendees  string     `json:"attendees"`
	Content    string     `json:"content"`
	Attachment Attachment `json:"attachment,omitzero"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type TeamMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Snapshot bundles all four collections as returned by FetchAll. Tasks,
// requirements and meetings arrive newest-first; members are unordered.
type Snapshot struct {
	Tasks        []Task        `json:"tasks"`
	Requirements []Requirement `json:"requirements"`
	Meetings     []MeetingLog  `json:"meetings"`
	Members      []TeamMember  `json:"members"`
}
