package completion_fx

import (
	"log"
	"os"

	"go.uber.org/fx"

	"meetspot/pkg/utils"
)

var Module = fx.Provide(ProvideCompletionClient)

// ProvideCompletionClient builds the OpenAI completion client. A missing API
// key is a startup-time fatal, never a per-request error.
func ProvideCompletionClient() utils.CompletionClientInterface {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}

	model := os.Getenv("OPENAI_MODEL")
	baseURL := os.Getenv("OPENAI_BASE_URL")

	log.Printf("Initializing OpenAI completion client (model %q)", model)
	return utils.NewOpenAICompletionClient(apiKey, model, baseURL)
}
