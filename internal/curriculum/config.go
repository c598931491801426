package curriculum

// Config holds curriculum generation settings.
type Config struct {
	// MaxChapters caps how many chapter titles are proposed. The model
	// is asked for exactly this many; extras are dropped.
	MaxChapters int

	// LessonsPerChapter is the target lesson count per chapter. The
	// planner tolerates any positive count, so this is a prompt target,
	// not a hard constraint.
	LessonsPerChapter int

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for curriculum generation.
func DefaultConfig() Config {
	return Config{
		MaxChapters:       5,
		LessonsPerChapter: 3,
		MaxTokens:         1024,
		Temperature:       0.4,
	}
}
