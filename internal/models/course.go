package models

// Course represents an offered course. Code is stored trimmed and uppercased.
type Course struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Code    string `db:"code" json:"code"`
	Credits int64  `db:"credits" json:"credits"`
}
