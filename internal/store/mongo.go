package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carebothq/carebot-api/internal/models"
)

// Mongo implements every store interface over a mongo.Database.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

// FromMongo wires a single Mongo instance into the Store bundle.
func FromMongo(m *Mongo) Store {
	return Store{
		Users:        m,
		Doctors:      m,
		Appointments: m,
		Sessions:     m,
		Messages:     m,
	}
}

// EnsureIndexes creates the unique email index so duplicate registration
// fails at the store level rather than silently overwriting.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// --- users ---

func (m *Mongo) InsertUser(ctx context.Context, u *models.User) error {
	_, err := m.db.Collection("users").InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (m *Mongo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := m.db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *Mongo) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := m.db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// --- doctors ---

func (m *Mongo) CountDoctors(ctx context.Context) (int64, error) {
	return m.db.Collection("doctors").CountDocuments(ctx, bson.M{})
}

func (m *Mongo) InsertDoctors(ctx context.Context, docs []models.Doctor) error {
	items := make([]interface{}, len(docs))
	for i := range docs {
		items[i] = docs[i]
	}
	_, err := m.db.Collection("doctors").InsertMany(ctx, items)
	return err
}

func (m *Mongo) Doctors(ctx context.Context) ([]models.Doctor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := m.db.Collection("doctors").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (m *Mongo) DoctorByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	var d models.Doctor
	err := m.db.Collection("doctors").FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// --- appointments ---

func (m *Mongo) InsertAppointment(ctx context.Context, a *models.Appointment) error {
	_, err := m.db.Collection("appointments").InsertOne(ctx, a)
	return err
}

func (m *Mongo) Appointments(ctx context.Context) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := m.db.Collection("appointments").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (m *Mongo) AppointmentByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	var a models.Appointment
	err := m.db.Collection("appointments").FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (m *Mongo) SetAppointmentStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := m.db.Collection("appointments").UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// --- chat sessions ---

func (m *Mongo) InsertSession(ctx context.Context, s *models.ChatSession) error {
	_, err := m.db.Collection("chat_sessions").InsertOne(ctx, s)
	return err
}

func (m *Mongo) SessionByID(ctx context.Context, id primitive.ObjectID) (*models.ChatSession, error) {
	var s models.ChatSession
	err := m.db.Collection("chat_sessions").FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (m *Mongo) Sessions(ctx context.Context) ([]models.ChatSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}})
	cursor, err := m.db.Collection("chat_sessions").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.ChatSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (m *Mongo) TouchSession(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := m.db.Collection("chat_sessions").UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"last_message_at": at}})
	return err
}

func (m *Mongo) DeleteSession(ctx context.Context, id primitive.ObjectID) error {
	_, err := m.db.Collection("chat_sessions").DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// --- messages ---

func (m *Mongo) InsertMessage(ctx context.Context, msg *models.Message) error {
	_, err := m.db.Collection("chat_messages").InsertOne(ctx, msg)
	return err
}

func (m *Mongo) MessagesBySession(ctx context.Context, sessionID primitive.ObjectID) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := m.db.Collection("chat_messages").Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []models.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (m *Mongo) RecentMessages(ctx context.Context, sessionID primitive.ObjectID, limit int) ([]models.Message, error) {
	// Newest first, capped, then reversed into chronological order.
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := m.db.Collection("chat_messages").Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var msgs []models.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (m *Mongo) DeleteMessagesBySession(ctx context.Context, sessionID primitive.ObjectID) error {
	_, err := m.db.Collection("chat_messages").DeleteMany(ctx, bson.M{"session_id": sessionID})
	return err
}
