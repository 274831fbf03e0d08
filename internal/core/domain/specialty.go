package domain

// Specialty is a medical specialty doctors can be filtered by.
type Specialty struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
