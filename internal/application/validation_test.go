package application

import (
	"errors"
	"strings"
	"testing"

	"microscope/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "label",
			value:     "The Long Night",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "label",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "question",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateCard(t *testing.T) {
	long := strings.Repeat("x", MaxTextLength+1)

	tests := []struct {
		name    string
		card    *domain.Card
		wantErr string
	}{
		{"valid period", domain.NewPeriod("Dawn", domain.ToneLight), ""},
		{"empty event label", domain.NewEvent(" ", domain.ToneDark), "label is required"},
		{"long period label", domain.NewPeriod(long, domain.ToneLight), "too long"},
		{"valid scene", domain.NewScene("Why?", "A hall", "", domain.ToneLight), ""},
		{"scene without question", domain.NewScene("", "A hall", "", domain.ToneLight), "scene question is required"},
		{"scene long answer", domain.NewScene("Why?", "", long, domain.ToneLight), "scene answer is too long"},
		{"divider", &domain.Card{Kind: domain.KindDivider}, "cannot edit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCard(tt.card)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateCard() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
