package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebothq/carebot-api/internal/models"
)

// Memory is an in-memory implementation of the store interfaces, used by
// the test suites and for running the API without a database.
type Memory struct {
	mu           sync.Mutex
	users        []models.User
	doctors      []models.Doctor
	appointments []models.Appointment
	sessions     []models.ChatSession
	messages     []models.Message
}

func NewMemory() *Memory {
	return &Memory{}
}

func FromMemory(m *Memory) Store {
	return Store{
		Users:        m,
		Doctors:      m,
		Appointments: m,
		Sessions:     m,
		Messages:     m,
	}
}

func (m *Memory) InsertUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	m.users = append(m.users, *u)
	return nil
}

func (m *Memory) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) CountDoctors(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.doctors)), nil
}

func (m *Memory) InsertDoctors(ctx context.Context, docs []models.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doctors = append(m.doctors, docs...)
	return nil
}

func (m *Memory) Doctors(ctx context.Context) ([]models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Doctor, len(m.doctors))
	copy(out, m.doctors)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) DoctorByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.doctors {
		if m.doctors[i].ID == id {
			d := m.doctors[i]
			return &d, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) InsertAppointment(ctx context.Context, a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments = append(m.appointments, *a)
	return nil
}

func (m *Memory) Appointments(ctx context.Context) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Appointment, len(m.appointments))
	copy(out, m.appointments)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) AppointmentByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.appointments {
		if m.appointments[i].ID == id {
			a := m.appointments[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) SetAppointmentStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.appointments {
		if m.appointments[i].ID == id {
			m.appointments[i].Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) InsertSession(ctx context.Context, s *models.ChatSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, *s)
	return nil
}

func (m *Memory) SessionByID(ctx context.Context, id primitive.ObjectID) (*models.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sessions {
		if m.sessions[i].ID == id {
			s := m.sessions[i]
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) Sessions(ctx context.Context) ([]models.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ChatSession, len(m.sessions))
	copy(out, m.sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out, nil
}

func (m *Memory) TouchSession(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sessions {
		if m.sessions[i].ID == id {
			m.sessions[i].LastMessageAt = at
			return nil
		}
	}
	return nil
}

func (m *Memory) DeleteSession(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sessions {
		if m.sessions[i].ID == id {
			m.sessions = append(m.sessions[:i], m.sessions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *Memory) InsertMessage(ctx context.Context, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *Memory) MessagesBySession(ctx context.Context, sessionID primitive.ObjectID) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Message
	for i := range m.messages {
		if m.messages[i].SessionID == sessionID {
			out = append(out, m.messages[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *Memory) RecentMessages(ctx context.Context, sessionID primitive.ObjectID, limit int) ([]models.Message, error) {
	msgs, err := m.MessagesBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func (m *Memory) DeleteMessagesBySession(ctx context.Context, sessionID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.messages[:0]
	for i := range m.messages {
		if m.messages[i].SessionID != sessionID {
			kept = append(kept, m.messages[i])
		}
	}
	m.messages = kept
	return nil
}
