package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeOfDay возвращается при некорректной строке времени
var ErrInvalidTimeOfDay = errors.New("types: invalid time of day")

// TimeOfDay представляет время суток как количество минут с полуночи.
// Вся арифметика слотов выполняется над этим типом; строки "HH:MM[:SS]"
// парсятся и форматируются только на границах системы (БД, JSON, конфиг).
//
// Интервалы слотов полуоткрытые [start, end), поэтому значение 1440 (24:00)
// допустимо как конец интервала, но не как начало.
type TimeOfDay int

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// NewTimeOfDay создает TimeOfDay из времени (отбрасывает дату и секунды)
func NewTimeOfDay(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// ParseTimeOfDay парсит строку формата "HH:MM" или "HH:MM:SS".
// Секунды допускаются на входе (так их отдает Postgres для TIME колонок),
// но отбрасываются.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	// "24:00" разрешаем как правую границу полуоткрытого интервала
	if hours == 24 && minutes == 0 {
		return TimeOfDay(MinutesPerDay), nil
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	return TimeOfDay(hours*60 + minutes), nil
}

// String форматирует время как "HH:MM"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeOfDay) IsBefore(other TimeOfDay) bool {
	return t < other
}

// IsAfter возвращает true, если t строго позже other
func (t TimeOfDay) IsAfter(other TimeOfDay) bool {
	return t > other
}

// AddMinutes возвращает время через minutes минут
func (t TimeOfDay) AddMinutes(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// IsValid возвращает true, если значение лежит в пределах суток
// (включая 24:00 как правую границу)
func (t TimeOfDay) IsValid() bool {
	return t >= 0 && t <= MinutesPerDay
}

// Scan реализует sql.Scanner. Postgres отдает TIME колонки как строку
// "15:04:05", драйвер может передать string, []byte или time.Time.
func (t *TimeOfDay) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = NewTimeOfDay(v)
		return nil
	case nil:
		return fmt.Errorf("%w: NULL", ErrInvalidTimeOfDay)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeOfDay, value)
	}
}

// Value реализует driver.Valuer, форматирует значение для TIME колонки
func (t TimeOfDay) Value() (driver.Value, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidTimeOfDay, int(t))
	}
	return fmt.Sprintf("%02d:%02d:00", int(t)/60, int(t)%60), nil
}

// MarshalJSON сериализует время как строку "HH:MM"
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON парсит время из строки "HH:MM[:SS]"
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeOfDay, err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
