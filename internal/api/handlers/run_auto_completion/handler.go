package run_auto_completion

import (
	"net/http"

	"github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers"
)

type Handler struct {
	useCase RunAutoCompletionUseCase
	logger  Logger
}

func NewHandler(useCase RunAutoCompletionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/auto-completion/run
// Служебный эндпоинт: запускает тот же проход, что и cron
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/auto-completion/run - Run failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/auto-completion/run - Run finished: processed=%d, failed=%d",
		result.ProcessedCount, result.FailedCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResult(result))
}
