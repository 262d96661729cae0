package installer

import "strings"

// Keys of the .env file the wizard fills.
const (
	KeyProvider       = "LLM_PROVIDER"
	KeyModel          = "MODEL_NAME"
	KeyTimeZone       = "TIMEZONE"
	KeyToolTransport  = "ASISTENTE_TOOL_TRANSPORT"
	KeyOllamaBaseURL  = "OLLAMA_BASE_URL"
	KeyCustomBaseURL  = "CUSTOM_OPENAI_BASE_URL"
	DefaultModel      = "Qwen/Qwen2.5-72B-Instruct"
	DefaultTimeZone   = "Europe/Madrid"
	defaultOllamaHost = "http://localhost:11434"
)

// InstallState holds the values collected across steps.
type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

func (s *InstallState) Provider() string {
	return strings.ToLower(s.EnvVars[KeyProvider])
}
