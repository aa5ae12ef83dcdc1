package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Assistant is the optional hosted natural-language collaborator. The
// deterministic engine is complete without it: it is consulted only when a
// turn matched nothing, and any failure is swallowed by the caller.
type Assistant interface {
	Enabled() bool
	Reply(ctx context.Context, message, storeContext string) (string, error)
}

type langchainAssistant struct {
	llm *openai.LLM
}

// NewAssistant builds the langchaingo-backed assistant. An empty API key
// yields a disabled assistant, never an error.
func NewAssistant(apiKey, model string) Assistant {
	if apiKey == "" {
		return &langchainAssistant{}
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return &langchainAssistant{}
	}
	return &langchainAssistant{llm: llm}
}

func (a *langchainAssistant) Enabled() bool {
	return a.llm != nil
}

func (a *langchainAssistant) Reply(ctx context.Context, message, storeContext string) (string, error) {
	if a.llm == nil {
		return "", fmt.Errorf("assistant disabled")
	}

	prompt := fmt.Sprintf(`Você é o atendente virtual de um restaurante. Responda em português, em no máximo duas frases, e sempre direcione o cliente para cardápio, pedidos ou horários.

Informações do restaurante:
%s

Mensagem do cliente: %s`, storeContext, message)

	out, err := llms.GenerateFromSinglePrompt(ctx, a.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("assistant call failed: %w", err)
	}
	return strings.TrimSpace(out), nil
}
