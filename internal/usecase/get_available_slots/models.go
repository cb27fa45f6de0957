package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	ProfessionalID int64   // ID специалиста
	Date           *string // YYYY-MM-DD; если не задана, возвращается весь горизонт
}

// Response модель ответа со списком слотов
type Response struct {
	ProfessionalID      int64
	Date                *string // дата запроса, nil для горизонта
	SlotDurationMinutes int
	AvailableSlots      []Slot // свободные слоты по возрастанию
	BookedSlots         []Slot // занятые времена в том же диапазоне
}

// Slot модель временного слота
type Slot struct {
	DateTime time.Time        // начало слота во временной зоне сервиса
	Time     types.TimeString // время начала "HH:MM"
}
