package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	DateTime string `json:"datetime"` // RFC3339 во временной зоне сервиса
	Time     string `json:"time"`     // "HH:MM"
}

// AvailableSlotsResponse HTTP модель ответа
type AvailableSlotsResponse struct {
	ProfessionalID int64          `json:"professionalId"`
	Date           *string        `json:"date,omitempty"`
	SlotDuration   int            `json:"slotDuration"`
	AvailableSlots []SlotResponse `json:"availableSlots"`
	BookedSlots    []SlotResponse `json:"bookedSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		ProfessionalID: resp.ProfessionalID,
		Date:           resp.Date,
		SlotDuration:   resp.SlotDurationMinutes,
		AvailableSlots: toSlots(resp.AvailableSlots),
		BookedSlots:    toSlots(resp.BookedSlots),
	}
}

func toSlots(slots []getAvailableSlots.Slot) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{
			DateTime: s.DateTime.Format(time.RFC3339),
			Time:     s.Time.String(),
		})
	}
	return out
}
