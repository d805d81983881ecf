package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user. Email is the unique key; everything
// else the client sends is kept in Profile.
type User struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email   string             `bson:"email" json:"email" validate:"required,email"`
	Profile Fields             `bson:",inline" json:"-"`
}

func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return marshalDocument(plain(u), u.Profile)
}

func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var v plain
	profile, err := unmarshalDocument(data, &v)
	if err != nil {
		return err
	}
	*u = User(v)
	u.Profile = profile
	return nil
}
