package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// startOfDay возвращает полночь даты t в ее временной зоне
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// bookedTimes собирает времена начала активных записей
func bookedTimes(appointments []*domain.Appointment) []time.Time {
	times := make([]time.Time, 0, len(appointments))
	for _, a := range appointments {
		times = append(times, a.Date)
	}
	return times
}

// toSlot переводит слот в модель ответа
func toSlot(start time.Time, loc *time.Location) Slot {
	local := start.In(loc)
	slot := domain.Slot{Start: local}
	return Slot{DateTime: local, Time: slot.Time()}
}

// toBookedSlots переводит занятые времена в модель ответа
func toBookedSlots(times []time.Time, loc *time.Location) []Slot {
	slots := make([]Slot, 0, len(times))
	for _, t := range times {
		slots = append(slots, toSlot(t, loc))
	}
	return slots
}
