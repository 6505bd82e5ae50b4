package models

import "time"

type Invitation struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Message   string
	Status    string
	CreatedAt time.Time
}

type Contact struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}
