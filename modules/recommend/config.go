package recommend

// Config holds the chat-model credentials. An empty key disables the
// ranker and leaves only skill matching.
type Config struct {
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	Model        string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

// Configured reports whether ranker credentials are present.
func (c Config) Configured() bool {
	return c.OpenAIAPIKey != ""
}
