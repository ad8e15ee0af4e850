package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personal-planner/models"
)

func TestValidator_CreateNote(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       models.CreateNoteRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Valid note request",
			req:       models.CreateNoteRequest{Text: "Buy milk", Priority: "high", Date: "2024-05-10"},
			wantError: false,
		},
		{
			name:      "Priority and date are optional",
			req:       models.CreateNoteRequest{Text: "Buy milk"},
			wantError: false,
		},
		{
			name:      "Missing text",
			req:       models.CreateNoteRequest{Text: "", Date: "2024-05-10"},
			wantError: true,
			errorMsg:  "text is required",
		},
		{
			name:      "Unknown priority",
			req:       models.CreateNoteRequest{Text: "Buy milk", Priority: "urgent"},
			wantError: true,
			errorMsg:  "priority must be one of: high, medium, low, normal",
		},
		{
			name:      "Invalid date format",
			req:       models.CreateNoteRequest{Text: "Buy milk", Date: "10-05-2024"},
			wantError: true,
			errorMsg:  "date must be in YYYY-MM-DD format",
		},
		{
			name:      "Date that does not exist",
			req:       models.CreateNoteRequest{Text: "Buy milk", Date: "2024-02-30"},
			wantError: true,
			errorMsg:  "YYYY-MM-DD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_CreateReminder(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       models.CreateReminderRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Valid reminder request",
			req:       models.CreateReminderRequest{Text: "Standup", Time: "09:30", Category: "work", Date: "2024-05-10"},
			wantError: false,
		},
		{
			name:      "Defaults are left to the planner",
			req:       models.CreateReminderRequest{Text: "Standup"},
			wantError: false,
		},
		{
			name:      "Hour out of range",
			req:       models.CreateReminderRequest{Text: "Standup", Time: "24:00"},
			wantError: true,
			errorMsg:  "time must be a time in HH:MM format",
		},
		{
			name:      "Missing leading zero",
			req:       models.CreateReminderRequest{Text: "Standup", Time: "9:30"},
			wantError: true,
		},
		{
			name:      "Unknown category",
			req:       models.CreateReminderRequest{Text: "Standup", Category: "errands"},
			wantError: true,
			errorMsg:  "category must be one of: work, personal, fitness",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_SaveSettings(t *testing.T) {
	v := New()

	err := v.Validate(&models.SaveSettingsRequest{Name: "Ana", Goals: "Run a 10k"})
	require.Error(t, err)

	errs, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "routine", errs[0].Field)
	assert.Equal(t, "required", errs[0].Tag)

	assert.NoError(t, v.Validate(&models.SaveSettingsRequest{Name: "Ana", Goals: "Run", Routine: "Mornings"}))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "text", Message: "text is required", Tag: "required"},
		{Field: "category", Message: "category must be valid", Tag: "category"},
	}

	errMsg := errs.Error()
	assert.Contains(t, errMsg, "text is required")
	assert.Contains(t, errMsg, "category must be valid")
}
