package llm

import "context"

// ChatModel — минимальная абстракция чат-LLM для генерации текстов
// сообщений. Конкретные провайдеры скрыты за портом, чтобы доменные
// пакеты не зависели от транспорта.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
