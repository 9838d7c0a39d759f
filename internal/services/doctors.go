package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebothq/carebot-api/internal/models"
	"github.com/carebothq/carebot-api/internal/store"
)

// seedDoctors is inserted once when the doctor collection is first found
// empty. A lazy one-time migration, never re-run once data exists.
func seedDoctors() []models.Doctor {
	now := time.Now().UTC()
	return []models.Doctor{
		{
			ID:              primitive.NewObjectID(),
			Name:            "Dr. Sarah Johnson",
			Specialty:       "General Physician",
			Rating:          4.8,
			ExperienceYears: 9,
			ImageURL:        "https://images.pexels.com/photos/5327585/pexels-photo-5327585.jpeg?auto=compress&cs=tinysrgb&w=1200",
			AvailableSlots:  []string{"Mon 10:00 AM", "Mon 3:00 PM", "Tue 11:30 AM", "Wed 2:00 PM"},
			CreatedAt:       now,
		},
		{
			ID:              primitive.NewObjectID(),
			Name:            "Dr. Michael Chen",
			Specialty:       "Cardiologist",
			Rating:          4.9,
			ExperienceYears: 12,
			ImageURL:        "https://images.pexels.com/photos/8460157/pexels-photo-8460157.jpeg?auto=compress&cs=tinysrgb&w=1200",
			AvailableSlots:  []string{"Tue 9:30 AM", "Thu 1:00 PM", "Fri 10:30 AM"},
			CreatedAt:       now,
		},
		{
			ID:              primitive.NewObjectID(),
			Name:            "Dr. Aisha Patel",
			Specialty:       "Dermatologist",
			Rating:          4.7,
			ExperienceYears: 7,
			ImageURL:        "https://images.pexels.com/photos/5215024/pexels-photo-5215024.jpeg?auto=compress&cs=tinysrgb&w=1200",
			AvailableSlots:  []string{"Mon 1:30 PM", "Wed 11:00 AM", "Thu 4:00 PM"},
			CreatedAt:       now,
		},
	}
}

// DoctorService covers the doctor listing and appointment booking flows.
type DoctorService struct {
	store store.Store
}

func NewDoctorService(st store.Store) *DoctorService {
	return &DoctorService{store: st}
}

// ListDoctors returns all doctors, seeding the fixed set first if the
// collection is empty.
func (s *DoctorService) ListDoctors(ctx context.Context) ([]models.DoctorView, error) {
	count, err := s.store.Doctors.CountDoctors(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if err := s.store.Doctors.InsertDoctors(ctx, seedDoctors()); err != nil {
			return nil, err
		}
	}
	doctors, err := s.store.Doctors.Doctors(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.DoctorView, 0, len(doctors))
	for i := range doctors {
		views = append(views, doctors[i].View())
	}
	return views, nil
}

func (s *DoctorService) GetDoctor(ctx context.Context, id string) (*models.DoctorView, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	doctor, err := s.store.Doctors.DoctorByID(ctx, oid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	view := doctor.View()
	return &view, nil
}

// BookAppointment creates a scheduled appointment, copying the doctor's
// name and specialty onto the record. The slot is not checked against the
// doctor's availability and is not removed after booking; double bookings
// are possible. Known gap carried over from the source behavior.
func (s *DoctorService) BookAppointment(ctx context.Context, doctorID, slot, symptoms, notes string) (*models.Appointment, error) {
	if doctorID == "" || slot == "" || symptoms == "" {
		return nil, invalid("doctor_id, slot, and symptoms are required")
	}
	oid, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, ErrNotFound
	}
	doctor, err := s.store.Doctors.DoctorByID(ctx, oid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:              primitive.NewObjectID(),
		DoctorID:        doctor.ID,
		DoctorName:      doctor.Name,
		DoctorSpecialty: doctor.Specialty,
		Slot:            slot,
		Symptoms:        symptoms,
		Notes:           notes,
		Status:          models.AppointmentScheduled,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.Appointments.InsertAppointment(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// ListAppointments returns all appointments, newest-created first.
func (s *DoctorService) ListAppointments(ctx context.Context) ([]models.AppointmentView, error) {
	appts, err := s.store.Appointments.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.AppointmentView, 0, len(appts))
	for i := range appts {
		views = append(views, appts[i].View())
	}
	return views, nil
}

// CancelAppointment sets the status to cancelled unconditionally, so a
// second cancel is a no-op rather than an error.
func (s *DoctorService) CancelAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	appt, err := s.store.Appointments.AppointmentByID(ctx, oid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.store.Appointments.SetAppointmentStatus(ctx, oid, models.AppointmentCancelled); err != nil {
		return nil, err
	}
	appt.Status = models.AppointmentCancelled
	return appt, nil
}
