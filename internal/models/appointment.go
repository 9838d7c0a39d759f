package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appointment statuses. Only scheduled -> cancelled is reachable through
// the API; "completed" exists for forward compatibility with the store.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment carries a point-in-time copy of the doctor's name and
// specialty, captured at booking. It is never re-synced if the doctor
// record changes later.
type Appointment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DoctorID        primitive.ObjectID `bson:"doctor_id" json:"-"`
	DoctorName      string             `bson:"doctor_name" json:"doctor_name"`
	DoctorSpecialty string             `bson:"doctor_specialty" json:"doctor_specialty"`
	Slot            string             `bson:"slot" json:"slot"`
	Symptoms        string             `bson:"symptoms" json:"symptoms"`
	Notes           string             `bson:"notes" json:"notes"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"-"`
}

type AppointmentView struct {
	ID              string    `json:"id"`
	DoctorName      string    `json:"doctor_name"`
	DoctorSpecialty string    `json:"doctor_specialty"`
	Slot            string    `json:"slot"`
	Symptoms        string    `json:"symptoms"`
	Notes           string    `json:"notes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func (a *Appointment) View() AppointmentView {
	return AppointmentView{
		ID:              a.ID.Hex(),
		DoctorName:      a.DoctorName,
		DoctorSpecialty: a.DoctorSpecialty,
		Slot:            a.Slot,
		Symptoms:        a.Symptoms,
		Notes:           a.Notes,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
	}
}
