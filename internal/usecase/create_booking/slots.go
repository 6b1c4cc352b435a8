package create_booking

import (
	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

// pickException выбирает исключение сотрудника на дату: адресное
// исключение имеет приоритет над общим исключением профессионала
func pickException(exceptions []*domain.ScheduleException, staffID int64) *domain.ScheduleException {
	var wide *domain.ScheduleException
	for _, exc := range exceptions {
		if exc.StaffID != nil {
			if *exc.StaffID == staffID {
				return exc
			}
			continue
		}
		if wide == nil {
			wide = exc
		}
	}
	return wide
}

// resolveDayRanges возвращает рабочие интервалы сотрудника на дату
// с учетом исключений (та же схема замещения, что и в расчете слотов)
func resolveDayRanges(
	staffID int64,
	serviceID int64,
	dayOfWeek int,
	weekly []*domain.WeeklySchedule,
	exceptions []*domain.ScheduleException,
) []domain.TimeRange {
	if exc := pickException(exceptions, staffID); exc != nil {
		if exc.IsClosed {
			return nil
		}
		if len(exc.TimeRanges) > 0 {
			return exc.TimeRanges
		}
	}

	var ranges []domain.TimeRange
	for _, ws := range weekly {
		if ws.StaffID != staffID || ws.DayOfWeek != dayOfWeek || !ws.Active || !ws.CoversService(serviceID) {
			continue
		}
		ranges = append(ranges, domain.TimeRange{Start: ws.StartTime, End: ws.EndTime})
	}
	return ranges
}

// isGeneratedSlotStart проверяет, что запрошенное время совпадает с началом
// одного из слотов, которые сетка расписания порождает для этой даты.
// Произвольное время внутри рабочего окна бронированием не является.
func isGeneratedSlotStart(ranges []domain.TimeRange, durationMinutes int, start types.TimeOfDay) bool {
	if durationMinutes <= 0 {
		return false
	}
	for _, tr := range ranges {
		if !tr.IsValid() {
			continue
		}
		for cur := tr.Start; !cur.AddMinutes(durationMinutes).IsAfter(tr.End); cur = cur.AddMinutes(durationMinutes) {
			if cur == start {
				return true
			}
		}
	}
	return false
}
