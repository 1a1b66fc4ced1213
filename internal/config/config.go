package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by MNEMO_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("MNEMO_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 9099
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// PluginToken is the shared bearer token the host presents on every hook
// call. Empty disables auth (local development only).
func PluginToken() string {
	return os.Getenv("PLUGIN_TOKEN")
}

// LLMProvider returns the configured LLM provider.
// Valid values: openai, mock. Defaults to "openai".
func LLMProvider() string {
	p := os.Getenv("LLM_PROVIDER")
	if p == "" {
		return "openai"
	}
	return p
}

func OpenAIAPIURL() string {
	u := os.Getenv("OPENAI_API_URL")
	if u == "" {
		return "https://api.openai.com/v1"
	}
	return u
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// Model returns the chat model used for memory decisions and depth selection.
func Model() string {
	m := os.Getenv("MODEL")
	if m == "" {
		return "gpt-4o-mini"
	}
	return m
}

// HostAPIURL is the base URL of the host platform's API.
func HostAPIURL() string {
	return os.Getenv("HOST_API_URL")
}

// HostAPIKey authenticates the sidecar against the host platform's API.
func HostAPIKey() string {
	return os.Getenv("HOST_API_KEY")
}

// MemoryEnabled toggles the auto-memory filter. Defaults to true.
func MemoryEnabled() bool {
	return boolEnv("MEMORY_ENABLED", true)
}

// ShowStatus toggles status notifications in the conversation UI.
// Defaults to true.
func ShowStatus() bool {
	return boolEnv("SHOW_STATUS", true)
}

// MaxRelatedMemories bounds how many existing memories (by recency) are given
// to the model as context. Defaults to 5.
func MaxRelatedMemories() int {
	n, err := strconv.Atoi(os.Getenv("MAX_RELATED_MEMORIES"))
	if err != nil || n <= 0 {
		return 5
	}
	return n
}

// DedupThreshold is the similarity level (0..1) above which the model is told
// to treat information as a duplicate of an existing memory. Defaults to 0.75.
func DedupThreshold() float64 {
	t, err := strconv.ParseFloat(os.Getenv("DEDUP_THRESHOLD"), 64)
	if err != nil || t <= 0 || t > 1 {
		return 0.75
	}
	return t
}

// ThinkingDepth returns the configured thinking depth
// (auto, quick, balanced, comprehensive). Defaults to "auto".
func ThinkingDepth() string {
	d := os.Getenv("THINKING_DEPTH")
	if d == "" {
		return "auto"
	}
	return d
}

// ShowThinking toggles surfacing the resolved depth to the conversation.
// Defaults to false.
func ShowThinking() bool {
	return boolEnv("SHOW_THINKING", false)
}

// PlantUMLServer returns the PlantUML server used for diagram image URLs.
func PlantUMLServer() string {
	s := os.Getenv("PLANTUML_SERVER")
	if s == "" {
		return "http://www.plantuml.com/plantuml/img/"
	}
	return s
}

// RateLimitRPS returns requests per second limit. Defaults to 100.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting. Defaults to 20.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info".
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

func boolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
