// Package store defines the persistence interfaces for the five record
// collections and provides Mongo-backed and in-memory implementations.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carebothq/carebot-api/internal/models"
)

var (
	ErrNotFound       = errors.New("store: not found")
	ErrDuplicateEmail = errors.New("store: duplicate email")
)

type UserStore interface {
	// InsertUser stores a new user. The email must already be lowercased;
	// a second insert with the same email fails with ErrDuplicateEmail.
	InsertUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type DoctorStore interface {
	CountDoctors(ctx context.Context) (int64, error)
	InsertDoctors(ctx context.Context, docs []models.Doctor) error
	Doctors(ctx context.Context) ([]models.Doctor, error)
	DoctorByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error)
}

type AppointmentStore interface {
	InsertAppointment(ctx context.Context, a *models.Appointment) error
	// Appointments returns all appointments, newest-created first.
	Appointments(ctx context.Context) ([]models.Appointment, error)
	AppointmentByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error)
	SetAppointmentStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

type SessionStore interface {
	InsertSession(ctx context.Context, s *models.ChatSession) error
	SessionByID(ctx context.Context, id primitive.ObjectID) (*models.ChatSession, error)
	// Sessions returns all chat sessions ordered by last activity, newest first.
	Sessions(ctx context.Context) ([]models.ChatSession, error)
	TouchSession(ctx context.Context, id primitive.ObjectID, at time.Time) error
	// DeleteSession is idempotent: deleting an absent session is not an error.
	DeleteSession(ctx context.Context, id primitive.ObjectID) error
}

type MessageStore interface {
	InsertMessage(ctx context.Context, m *models.Message) error
	// MessagesBySession returns all messages of a session, oldest first.
	MessagesBySession(ctx context.Context, sessionID primitive.ObjectID) ([]models.Message, error)
	// RecentMessages returns the most recent limit messages of a session
	// in ascending chronological order.
	RecentMessages(ctx context.Context, sessionID primitive.ObjectID, limit int) ([]models.Message, error)
	DeleteMessagesBySession(ctx context.Context, sessionID primitive.ObjectID) error
}

// Store bundles the per-collection interfaces handed to the services.
type Store struct {
	Users        UserStore
	Doctors      DoctorStore
	Appointments AppointmentStore
	Sessions     SessionStore
	Messages     MessageStore
}
