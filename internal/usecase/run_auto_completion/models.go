package run_auto_completion

// Config параметры прохода авто-завершения
type Config struct {
	WindowDays    int // Сколько дней назад искать кандидатов
	BatchSize     int // Максимум бронирований за один проход
	BufferSeconds int // Защитный буфер после времени окончания
}

// Result итог одного прохода авто-завершения.
// Проход никогда не падает из-за одного бронирования: сбои копятся
// в FailedIDs, остальные кандидаты обрабатываются дальше.
type Result struct {
	ProcessedCount int
	FailedCount    int
	ProcessedIDs   []int64
	FailedIDs      []int64
}
