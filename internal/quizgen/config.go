package quizgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the LLM response. A full quiz with
	// explanations runs to a few thousand tokens.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxTextLen is the number of article characters included in the
	// prompt.
	MaxTextLen int
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.5,
		MaxTextLen:  8000,
	}
}
