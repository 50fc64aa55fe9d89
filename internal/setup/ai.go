package setup

import (
	"fmt"
	"time"

	"github.com/OFFIS-RIT/greenlens/internal/util"
	"github.com/OFFIS-RIT/greenlens/pkg/ai"
	oai "github.com/OFFIS-RIT/greenlens/pkg/ai/ollama"
	gai "github.com/OFFIS-RIT/greenlens/pkg/ai/openai"
)

// NewAIClient creates the language model client selected by AI_ADAPTER.
func NewAIClient() (ai.Client, error) {
	timeout := time.Duration(util.GetEnvNumeric("AI_TIMEOUT_SECONDS", 300)) * time.Second
	parallel := int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 15))
	dim := int(util.GetEnvNumeric("AI_EMBED_DIM", 1536))

	switch adapter := util.GetEnvString("AI_ADAPTER", "openai"); adapter {
	case "ollama":
		return oai.NewAuditOllamaClient(oai.NewAuditOllamaClientParams{
			ChatModel:      util.GetEnvString("AI_CHAT_MODEL", "llama3.1"),
			EmbeddingModel: util.GetEnvString("AI_EMBED_MODEL", "nomic-embed-text"),
			EmbeddingDim:   dim,

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),

			MaxConcurrentRequests: parallel,
			Timeout:               timeout,
		})
	case "openai":
		return gai.NewAuditOpenAIClient(gai.NewAuditOpenAIClientParams{
			ChatModel:      util.GetEnvString("AI_CHAT_MODEL", "gpt-4o-mini"),
			EmbeddingModel: util.GetEnvString("AI_EMBED_MODEL", "text-embedding-3-small"),
			EmbeddingDim:   dim,

			ChatURL:      util.GetEnv("AI_CHAT_URL"),
			ChatKey:      util.GetEnv("AI_CHAT_KEY"),
			EmbeddingURL: util.GetEnv("AI_EMBED_URL"),
			EmbeddingKey: util.GetEnvString("AI_EMBED_KEY", util.GetEnv("AI_CHAT_KEY")),

			MaxConcurrentRequests: parallel,
			Timeout:               timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown AI_ADAPTER %q", adapter)
	}
}
