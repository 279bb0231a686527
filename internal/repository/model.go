package repository

// StoryRecord is one user's story-mode row. Progression is 1-based; 0 with
// Enabled false means story mode was never started.
type StoryRecord struct {
	UserID      string
	Enabled     bool
	Progression int
}
