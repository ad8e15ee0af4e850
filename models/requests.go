package models

type CreateNoteRequest struct {
	Text     string `json:"text" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,priority"`
	Date     string `json:"date" validate:"omitempty,dateformat"`
}

type CreateReminderRequest struct {
	Text     string `json:"text" validate:"required"`
	Time     string `json:"time" validate:"omitempty,clock"`
	Category string `json:"category" validate:"omitempty,category"`
	Date     string `json:"date" validate:"omitempty,dateformat"`
}

type SaveSettingsRequest struct {
	Name    string `json:"name" validate:"required"`
	Goals   string `json:"goals" validate:"required"`
	Routine string `json:"routine" validate:"required"`
}

type LoginRequest struct {
	IDToken      string `json:"id_token,omitempty"`
	Code         string `json:"code,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}
