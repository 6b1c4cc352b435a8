package create_schedule_exception

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers"
	"github.com/dkarlovs/SBM-ScheduleService/internal/api/middleware"
	applyScheduleException "github.com/dkarlovs/SBM-ScheduleService/internal/usecase/apply_schedule_exception"
)

const (
	msgMissingUserID         = "отсутствует идентификатор пользователя"
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgAccessDenied          = "нет доступа к расписанию этого профессионала"
	msgDateInPast            = "дата исключения в прошлом"
	msgClosedWithRanges      = "закрытый день не может содержать рабочие интервалы"
	msgInvalidTimeRange      = "время окончания должно быть позже времени начала"
)

type Handler struct {
	useCase ApplyScheduleExceptionUseCase
	logger  Logger
}

func NewHandler(useCase ApplyScheduleExceptionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/professionals/{professionalId}/schedule-exceptions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	vars := mux.Vars(r)
	professionalIDStr := vars["professionalId"]
	professionalID, err := strconv.ParseInt(professionalIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /professionals/{id}/schedule-exceptions - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	// Исключения может создавать только сам профессионал
	if professionalID != userID {
		h.logger.Warn("POST /professionals/{id}/schedule-exceptions - Access denied: professional_id=%d, user_id=%d",
			professionalID, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	var req CreateExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /professionals/{id}/schedule-exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(professionalID)
	if err != nil {
		h.logger.Warn("POST /professionals/{id}/schedule-exceptions - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, applyScheduleException.ErrDateInPast):
			h.logger.Warn("POST /professionals/{id}/schedule-exceptions - Date in the past: professional_id=%d, date=%s",
				professionalID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, applyScheduleException.ErrInvalidTimeRange):
			h.logger.Warn("POST /professionals/{id}/schedule-exceptions - Invalid time range: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, applyScheduleException.ErrInvalidInput):
			h.logger.Warn("POST /professionals/{id}/schedule-exceptions - Invalid input: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondBadRequest(w, msgClosedWithRanges)

		default:
			h.logger.Error("POST /professionals/{id}/schedule-exceptions - Failed to create exception: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /professionals/{id}/schedule-exceptions - Exception created successfully: exception_id=%d, professional_id=%d, cancelled=%d",
		result.Exception.ID, professionalID, result.BookingsCancelled)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
