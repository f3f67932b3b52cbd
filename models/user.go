package models

import "time"

type User struct {
	ID        int64     `json:"id" bson:"id"`
	Username  string    `json:"username" bson:"username"`
	Password  string    `json:"-" bson:"password"`
	Email     *string   `json:"email" bson:"email,omitempty"`
	Name      *string   `json:"name" bson:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type InsertUser struct {
	Username string
	Password string
	Email    *string
	Name     *string
}
