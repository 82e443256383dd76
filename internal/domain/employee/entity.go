package employee

import "time"

type Employee struct {
	ID        string
	Code      string
	FirstName string
	LastName  string
	Email     *string
	Position  *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins the name parts for display.
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
