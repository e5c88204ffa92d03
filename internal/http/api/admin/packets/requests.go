package packets

type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateCurrentProfileRequest struct {
	Email string  `json:"email" binding:"required,email"`
	Name  *string `json:"name"`
}

// OverrideRequest forces a presenter on air, e.g. for a surprise guest
// slot that was never entered into the schedule.
type OverrideRequest struct {
	Name            string  `json:"name" binding:"required"`
	ShowName        string  `json:"show_name"`
	Description     string  `json:"description"`
	PhotoURL        *string `json:"photo_url"`
	DurationMinutes int     `json:"duration_minutes"`
}
