package get_month_availability

import (
	"time"

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
// с учетом исключений (та же схема замещения, что и в расчете дня)
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

// staffHasFreeSlot проверяет наличие хотя бы одного свободного слота
// у сотрудника, не генерируя весь список (выходим на первом свободном)
func staffHasFreeSlot(
	ranges []domain.TimeRange,
	durationMinutes int,
	bookings []*domain.Booking,
	pastCutoff *types.TimeOfDay,
) bool {
	if durationMinutes <= 0 {
		return false
	}
	for _, tr := range ranges {
		if !tr.IsValid() {
			continue
		}
		for cur := tr.Start; !cur.AddMinutes(durationMinutes).IsAfter(tr.End); cur = cur.AddMinutes(durationMinutes) {
			if pastCutoff != nil && cur.IsBefore(*pastCutoff) {
				continue
			}
			if !domain.HasOverlappingBooking(cur, cur.AddMinutes(durationMinutes), bookings) {
				return true
			}
		}
	}
	return false
}

type dateKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dateKey {
	y, m, d := t.Date()
	return dateKey{year: y, month: m, day: d}
}

// groupBookings раскладывает бронирования по дате и сотруднику
func groupBookings(bookings []*domain.Booking) map[dateKey]map[int64][]*domain.Booking {
	grouped := make(map[dateKey]map[int64][]*domain.Booking)
	for _, b := range bookings {
		k := keyOf(b.Date)
		if grouped[k] == nil {
			grouped[k] = make(map[int64][]*domain.Booking)
		}
		grouped[k][b.StaffID] = append(grouped[k][b.StaffID], b)
	}
	return grouped
}

// groupExceptionsByDate раскладывает исключения по датам
func groupExceptionsByDate(exceptions []*domain.ScheduleException) map[dateKey][]*domain.ScheduleException {
	grouped := make(map[dateKey][]*domain.ScheduleException)
	for _, exc := range exceptions {
		grouped[keyOf(exc.Date)] = append(grouped[keyOf(exc.Date)], exc)
	}
	return grouped
}

func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

func pastCutoffFor(date, now time.Time) *types.TimeOfDay {
	if !isSameDay(date, now) {
		return nil
	}
	cutoff := types.NewTimeOfDay(now)
	return &cutoff
}
