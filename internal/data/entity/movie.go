package entity

type Movie struct {
	Base
	Name     string `db:"name"`
	Director string `db:"director"`
	Summary  string `db:"summary"`
}
