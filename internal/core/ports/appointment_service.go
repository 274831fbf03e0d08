package ports

// AppointmentForm is the booking form as a patient fills it in.
type AppointmentForm struct {
	DoctorID  string `validate:"required"`
	Specialty string `validate:"required"`
	Date      string `validate:"required,datetime=2006-01-02"`
	Time      string `validate:"required,datetime=15:04"`
	Notes     string
}

// PasswordChange is the admin form for resetting a user's password.
type PasswordChange struct {
	UserID      string `validate:"required"`
	NewPassword string `validate:"required,min=6"`
}
