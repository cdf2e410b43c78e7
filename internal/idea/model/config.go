package model

// ================ Config ================
const (
	TransportGenAI     = "genai"
	TransportChatModel = "chatmodel"
)

type GenerationConfig struct {
	Transport       string  `envconfig:"IDEA_TRANSPORT" default:"genai"`
	Model           string  `envconfig:"IDEA_MODEL" default:"gemini-2.0-flash"`
	Temperature     float32 `envconfig:"IDEA_TEMPERATURE" default:"0.8"`
	TopK            int32   `envconfig:"IDEA_TOP_K" default:"40"`
	TopP            float32 `envconfig:"IDEA_TOP_P" default:"0.95"`
	MaxOutputTokens int32   `envconfig:"IDEA_MAX_OUTPUT_TOKENS" default:"150"`
}

// DefaultGenerationConfig mirrors the envconfig defaults for callers that
// build a controller without the environment (tests, tools).
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Transport:       TransportGenAI,
		Model:           "gemini-2.0-flash",
		Temperature:     0.8,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 150,
	}
}

type HistoryConfig struct {
	TTL        string `envconfig:"HISTORY_TTL" default:"24h"`
	MaxEntries int    `envconfig:"HISTORY_MAX_ENTRIES" default:"20"`
}
