package notifyservice

// CancellationNotice письмо клиенту об отмене бронирования
type CancellationNotice struct {
	ClientID  int64  `json:"clientId"`
	BookingID int64  `json:"bookingId"`
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM
	Reason    string `json:"reason"`
	RequestID string `json:"requestId,omitempty"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
