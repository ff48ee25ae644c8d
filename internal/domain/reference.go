package domain

// Category groups tickets by topic.
type Category struct {
	ID   string
	Name string
}

// Priority ranks ticket urgency. Level runs 1 (lowest) to 4 (highest).
type Priority struct {
	ID    string
	Name  string
	Level int
}

// PriorityLevelMin and PriorityLevelMax bound Priority.Level.
const (
	PriorityLevelMin = 1
	PriorityLevelMax = 4
)
