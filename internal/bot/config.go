package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Number of questions per quiz session
	QuestionCount int
	// Number of options per question, correct answer included
	ChoicesCount int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		QuestionCount: 10,
		ChoicesCount:  4,
	}
}
