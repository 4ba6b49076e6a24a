package domain

import (
	"fmt"
	"time"
)

// SnapshotVersion is bumped whenever the persisted layout changes.
const SnapshotVersion = 1

// Snapshot is the complete application state: every user, vehicle and
// rental plus the rental id sequence.
type Snapshot struct {
	Version       int       `json:"version"`
	Users         []User    `json:"users"`
	Vehicles      []Vehicle `json:"vehicles"`
	Rentals       []Rental  `json:"rentals"`
	NextRentalSeq int       `json:"next_rental_seq"`
	SavedOn       time.Time `json:"saved_on"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Version:       SnapshotVersion,
		Users:         []User{},
		Vehicles:      []Vehicle{},
		Rentals:       []Rental{},
		NextRentalSeq: 1,
	}
}

// NextRentalID reserves the next id in the R00001 sequence.
func (s *Snapshot) NextRentalID() string {
	if s.NextRentalSeq < 1 {
		s.NextRentalSeq = 1
	}
	id := fmt.Sprintf("R%05d", s.NextRentalSeq)
	s.NextRentalSeq++
	return id
}

func (s *Snapshot) FindUser(id string) *User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

func (s *Snapshot) FindVehicle(id string) *Vehicle {
	for i := range s.Vehicles {
		if s.Vehicles[i].ID == id {
			return &s.Vehicles[i]
		}
	}
	return nil
}

func (s *Snapshot) FindRental(id string) *Rental {
	for i := range s.Rentals {
		if s.Rentals[i].ID == id {
			return &s.Rentals[i]
		}
	}
	return nil
}

func (s *Snapshot) RemoveUser(id string) bool {
	for i := range s.Users {
		if s.Users[i].ID == id {
			s.Users = append(s.Users[:i], s.Users[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Snapshot) RemoveVehicle(id string) bool {
	for i := range s.Vehicles {
		if s.Vehicles[i].ID == id {
			s.Vehicles = append(s.Vehicles[:i], s.Vehicles[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Snapshot) RentalsForUser(userID string) []Rental {
	var out []Rental
	for _, r := range s.Rentals {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

func (s *Snapshot) RentalsForVehicle(vehicleID string) []Rental {
	var out []Rental
	for _, r := range s.Rentals {
		if r.VehicleID == vehicleID {
			out = append(out, r)
		}
	}
	return out
}

func (s *Snapshot) CountActiveForUser(userID string) int {
	n := 0
	for _, r := range s.Rentals {
		if r.UserID == userID && r.IsActive() {
			n++
		}
	}
	return n
}

func (s *Snapshot) CountActiveForVehicle(vehicleID string) int {
	n := 0
	for _, r := range s.Rentals {
		if r.VehicleID == vehicleID && r.IsActive() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy that shares no memory with s.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Version:       s.Version,
		NextRentalSeq: s.NextRentalSeq,
		SavedOn:       s.SavedOn,
		Users:         make([]User, len(s.Users)),
		Vehicles:      make([]Vehicle, len(s.Vehicles)),
		Rentals:       make([]Rental, len(s.Rentals)),
	}
	for i, u := range s.Users {
		out.Users[i] = u.Clone()
	}
	for i, v := range s.Vehicles {
		out.Vehicles[i] = v.Clone()
	}
	for i, r := range s.Rentals {
		out.Rentals[i] = r.Clone()
	}
	return out
}

func (u User) Clone() User {
	if u.Individual != nil {
		p := *u.Individual
		u.Individual = &p
	}
	if u.Corporate != nil {
		p := *u.Corporate
		u.Corporate = &p
	}
	if u.Staff != nil {
		p := *u.Staff
		u.Staff = &p
	}
	return u
}

func (v Vehicle) Clone() Vehicle {
	if v.Car != nil {
		c := *v.Car
		v.Car = &c
	}
	if v.Motorbike != nil {
		m := *v.Motorbike
		v.Motorbike = &m
	}
	if v.Truck != nil {
		t := *v.Truck
		v.Truck = &t
	}
	return v
}

func (r Rental) Clone() Rental {
	if r.ActualReturnDate != nil {
		d := *r.ActualReturnDate
		r.ActualReturnDate = &d
	}
	if r.ReturnedOn != nil {
		d := *r.ReturnedOn
		r.ReturnedOn = &d
	}
	return r
}
