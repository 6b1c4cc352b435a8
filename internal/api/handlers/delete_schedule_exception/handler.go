package delete_schedule_exception

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers"
	"github.com/dkarlovs/SBM-ScheduleService/internal/api/middleware"
	"github.com/dkarlovs/SBM-ScheduleService/internal/service/schedule"
)

const (
	msgMissingUserID         = "отсутствует идентификатор пользователя"
	msgInvalidProfessionalID = "некорректный ID профессионала"
	msgInvalidExceptionID    = "некорректный ID исключения"
	msgExceptionNotFound     = "исключение не найдено"
	msgAccessDenied          = "нет доступа к расписанию этого профессионала"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/professionals/{professionalId}/schedule-exceptions/{exceptionId}
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
		h.logger.Warn("DELETE /professionals/{id}/schedule-exceptions/{id} - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	exceptionIDStr := vars["exceptionId"]
	exceptionID, err := strconv.ParseInt(exceptionIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id}/schedule-exceptions/{id} - Invalid exception ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExceptionID)
		return
	}

	err = h.service.DeleteException(r.Context(), exceptionID, professionalID, userID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrExceptionNotFound):
			h.logger.Warn("DELETE /professionals/{id}/schedule-exceptions/{id} - Exception not found: exception_id=%d", exceptionID)
			handlers.RespondNotFound(w, msgExceptionNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /professionals/{id}/schedule-exceptions/{id} - Access denied: professional_id=%d, user_id=%d",
				professionalID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /professionals/{id}/schedule-exceptions/{id} - Failed to delete exception: exception_id=%d, error=%v",
				exceptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /professionals/{id}/schedule-exceptions/{id} - Exception deleted successfully: exception_id=%d, professional_id=%d",
		exceptionID, professionalID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
