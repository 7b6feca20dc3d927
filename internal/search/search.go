package search

// ResultType identifies the kind of entity in a search result.
type ResultType string

const (
	ResultTask        ResultType = "task"
	ResultRequirement ResultType = "requirement"
	ResultMeeting     ResultType = "meeting"
)

// Result is a single search hit returned to the caller.
type Result struct {
	Type    ResultType `json:"type"`
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Snippet string     `json:"snippet"`
}

// Query describes a search request.
type Query struct {
	Text       string
	FilterType ResultType // empty = all types
	Limit      int
	Offset     int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
}

// Searcher can execute a full-text search.
type Searcher interface {
	Search(q Query) ([]Result, int, error)
	Healthy() bool
}

// Indexer can push entities into a search index.
type Indexer interface {
	IndexTask(t TaskRecord) error
	IndexRequirement(r RequirementRecord) error
	IndexMeeting(m MeetingRecord) error
	DeleteTask(id string) error
	DeleteRequirement(id string) error
	DeleteMeeting(id string) error
}

// TaskRecord is the data we index for a task.
type TaskRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	Status      string `json:"status"`
	Issue       string `json:"issue"`
}

// RequirementRecord is the data we index for a requirement.
type RequirementRecord struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// MeetingRecord is the data we index for a meeting log.
type MeetingRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Attendees string `json:"attendees"`
	Date      string `json:"date"`
}
