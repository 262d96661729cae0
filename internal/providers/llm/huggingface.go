package llm

import (
	"time"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
)

const huggingFaceBaseURL = "https://router.huggingface.co"

// HuggingFace uses the Inference Providers router, which speaks the
// OpenAI chat-completions protocol.
type HuggingFace struct {
	*OpenAICompatible
}

func NewHuggingFace(baseURL, token, model string, timeout time.Duration) *HuggingFace {
	if baseURL == "" {
		baseURL = huggingFaceBaseURL
	}
	return &HuggingFace{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    baseURL,
			APIKey:     token,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
			ExtraHeaders: map[string]string{
				"User-Agent": core.AppUserAgent,
			},
			Timeout: timeout,
		}),
	}
}
