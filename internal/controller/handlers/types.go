package handlers

import (
	"go.uber.org/zap"

	"github.com/rutibeauty/salon_bot/internal/controller/state"
	"github.com/rutibeauty/salon_bot/internal/tools"
)

// Ключи собранных в диалоге ответов
const (
	dataKeyDateTime = "datetime"
	dataKeyName     = "name"
)

// Handlers обрабатывает команды и диалог бронирования.
// Единственный выход к ядру — граница tools, как у любого другого
// разговорного слоя.
type Handlers struct {
	tools        *tools.Tools
	stateManager *state.Manager
	logger       *zap.Logger
}

func NewHandlers(
	toolset *tools.Tools,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		tools:        toolset,
		stateManager: stateManager,
		logger:       logger,
	}
}
