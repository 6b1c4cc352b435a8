package get_day_slots

import (
	"sort"
	"time"

	"github.com/dkarlovs/SBM-ScheduleService/internal/domain"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/types"
)

// pickException выбирает исключение, действующее для сотрудника на дату.
// Исключение, адресованное конкретному сотруднику, имеет приоритет над
// общим исключением профессионала.
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

// resolveDayRanges возвращает рабочие интервалы сотрудника на дату.
// Исключение на дату полностью замещает недельное расписание:
// - is_closed → ноль интервалов;
// - явные интервалы → используются вместо недельных окон;
// - исключение без интервалов и без закрытия → недельное расписание.
// Без исключения берутся активные недельные окна этого дня недели,
// в которых доступна запрошенная услуга.
func resolveDayRanges(
	staffID int64,
	serviceID int64,
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

	ranges := make([]domain.TimeRange, 0)
	for _, ws := range weekly {
		if ws.StaffID != staffID || !ws.Active || !ws.CoversService(serviceID) {
			continue
		}
		ranges = append(ranges, domain.TimeRange{Start: ws.StartTime, End: ws.EndTime})
	}
	return ranges
}

// generateSlotStarts генерирует времена начала слотов для набора интервалов.
// В каждом интервале слоты идут от его начала с шагом durationMinutes,
// пока конец слота не выходит за конец интервала. Дубликаты по времени
// начала между интервалами схлопываются (остается первый).
// Результат отсортирован по возрастанию.
func generateSlotStarts(ranges []domain.TimeRange, durationMinutes int) []types.TimeOfDay {
	if durationMinutes <= 0 {
		return nil
	}

	seen := make(map[types.TimeOfDay]struct{})
	starts := make([]types.TimeOfDay, 0)

	for _, tr := range ranges {
		if !tr.IsValid() {
			continue
		}
		for cur := tr.Start; !cur.AddMinutes(durationMinutes).IsAfter(tr.End); cur = cur.AddMinutes(durationMinutes) {
			if _, ok := seen[cur]; ok {
				continue
			}
			seen[cur] = struct{}{}
			starts = append(starts, cur)
		}
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i].IsBefore(starts[j]) })

	return starts
}

// markSlots помечает занятость каждого слота.
// Слот занят, если он пересекается с блокирующим бронированием или
// (для сегодняшней даты) его начало уже прошло. Сравнение с "сейчас"
// строгое: слот, начинающийся в текущую минуту, еще доступен.
func markSlots(
	starts []types.TimeOfDay,
	durationMinutes int,
	bookings []*domain.Booking,
	pastCutoff *types.TimeOfDay,
) []Slot {
	slots := make([]Slot, len(starts))
	for i, start := range starts {
		end := start.AddMinutes(durationMinutes)

		booked := domain.HasOverlappingBooking(start, end, bookings)
		if !booked && pastCutoff != nil && start.IsBefore(*pastCutoff) {
			booked = true
		}

		slots[i] = Slot{StartTime: start, IsBooked: booked}
	}
	return slots
}

// hasFreeSlot возвращает true, если у сотрудника есть хотя бы один
// свободный слот (short-circuit для месячной доступности)
func hasFreeSlot(
	starts []types.TimeOfDay,
	durationMinutes int,
	bookings []*domain.Booking,
	pastCutoff *types.TimeOfDay,
) bool {
	for _, start := range starts {
		end := start.AddMinutes(durationMinutes)
		if pastCutoff != nil && start.IsBefore(*pastCutoff) {
			continue
		}
		if !domain.HasOverlappingBooking(start, end, bookings) {
			return true
		}
	}
	return false
}

// groupBookingsByStaff раскладывает бронирования по сотрудникам
func groupBookingsByStaff(bookings []*domain.Booking) map[int64][]*domain.Booking {
	grouped := make(map[int64][]*domain.Booking)
	for _, b := range bookings {
		grouped[b.StaffID] = append(grouped[b.StaffID], b)
	}
	return grouped
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

// pastCutoffFor возвращает границу "прошедших" слотов: для сегодняшней
// даты это текущая минута, для будущих дат границы нет
func pastCutoffFor(date, now time.Time) *types.TimeOfDay {
	if !isSameDay(date, now) {
		return nil
	}
	cutoff := types.NewTimeOfDay(now)
	return &cutoff
}
