package model

// Course represents a golf course in the system
type Course struct {
	ID       string  `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Location string  `db:"location" json:"location"`
	Holes    int     `db:"holes" json:"holes,omitempty"`
	Par      int     `db:"par" json:"par,omitempty"`
	ImageURL *string `db:"image_url" json:"image_url,omitempty"`
}
