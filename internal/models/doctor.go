package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Doctor struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Specialty       string             `bson:"specialty" json:"specialty"`
	Rating          float64            `bson:"rating" json:"rating"`
	ExperienceYears int                `bson:"experience_years" json:"experience_years"`
	ImageURL        string             `bson:"image_url" json:"image_url"`
	AvailableSlots  []string           `bson:"available_slots" json:"available_slots"`
	CreatedAt       time.Time          `bson:"createdAt" json:"-"`
}

// DoctorView maps the Mongo _id to a plain id string for the frontend.
type DoctorView struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Specialty       string   `json:"specialty"`
	Rating          float64  `json:"rating"`
	ExperienceYears int      `json:"experience_years"`
	ImageURL        string   `json:"image_url"`
	AvailableSlots  []string `json:"available_slots"`
}

func (d *Doctor) View() DoctorView {
	slots := d.AvailableSlots
	if slots == nil {
		slots = []string{}
	}
	return DoctorView{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		Specialty:       d.Specialty,
		Rating:          d.Rating,
		ExperienceYears: d.ExperienceYears,
		ImageURL:        d.ImageURL,
		AvailableSlots:  slots,
	}
}
