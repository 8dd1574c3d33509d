package models

// Person represents one row of the `person` table.
// All fields are free text; the table declares no primary key, so rows are
// distinguishable only by content and duplicates are allowed.
type Person struct {
	Username   string `db:"username" json:"username"`
	Email      string `db:"email" json:"email"`
	FirstName  string `db:"firstname" json:"firstname"`
	LastName   string `db:"lastname" json:"lastname"`
	Biography  string `db:"biography" json:"biography"`
	Occupation string `db:"occupation" json:"occupation"`
}

// PersonName is the (firstname, lastname) projection returned by the
// partial lastname search.
type PersonName struct {
	FirstName string `db:"firstname" json:"firstname"`
	LastName  string `db:"lastname" json:"lastname"`
}
