package models

// Apartment is a numbered unit in the building.
type Apartment struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
	Floor  int    `json:"floor"`
	Notes  string `json:"notes"`
}

// Area is a common space (lobby, roof, parking, boiler room).
type Area struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

// Category is a task/asset classification entry; Task.Category is validated
// against this set.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
