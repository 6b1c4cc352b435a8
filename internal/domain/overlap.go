package domain

import "github.com/dkarlovs/SBM-ScheduleService/pkg/types"

// Overlaps проверяет пересечение двух полуоткрытых интервалов [start, end).
// Интервалы пересекаются, только если:
// - начало одного СТРОГО раньше конца другого И
// - конец одного СТРОГО позже начала другого
//
// Граничащие интервалы пересечением не считаются - бронирования "встык"
// допустимы:
// - Слот 11:30-12:00, бронирование 11:20-11:40 → ЕСТЬ пересечение (11:30-11:40)
// - Слот 11:30-12:00, бронирование 11:00-11:30 → НЕТ пересечения (граничат)
// - Слот 11:30-12:00, бронирование 12:00-12:30 → НЕТ пересечения (граничат)
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeOfDay) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}

// OverlapsBooking проверяет пересечение интервала слота с бронированием.
// Отмененные бронирования (canceled, cancelled_system) интервал не занимают.
func OverlapsBooking(slotStart, slotEnd types.TimeOfDay, booking *Booking) bool {
	if !booking.BlocksSlot() {
		return false
	}
	return Overlaps(slotStart, slotEnd, booking.StartTime, booking.EndTime)
}

// CountOverlappingBookings подсчитывает бронирования, пересекающиеся со слотом
func CountOverlappingBookings(slotStart, slotEnd types.TimeOfDay, bookings []*Booking) int {
	count := 0
	for _, b := range bookings {
		if OverlapsBooking(slotStart, slotEnd, b) {
			count++
		}
	}
	return count
}

// HasOverlappingBooking возвращает true, если слот пересекается хотя бы
// с одним блокирующим бронированием
func HasOverlappingBooking(slotStart, slotEnd types.TimeOfDay, bookings []*Booking) bool {
	for _, b := range bookings {
		if OverlapsBooking(slotStart, slotEnd, b) {
			return true
		}
	}
	return false
}
