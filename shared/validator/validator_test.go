package validator_test

import (
	"strings"
	"testing"
	"tonsor/shared/validator"
)

type walkInRequest struct {
	ClientName  string `validate:"required"       json:"client_name"`
	ClientPhone string `validate:"required,phone" json:"client_phone"`
	ServiceType string `validate:"oneof=Haircut Taglio Shave" json:"service_type"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *walkInRequest
		expectError bool
	}{
		{
			name: "valid request",
			data: &walkInRequest{
				ClientName:  "Mario Rossi",
				ClientPhone: "3334445566",
				ServiceType: "Haircut",
			},
			expectError: false,
		},
		{
			name: "missing client name",
			data: &walkInRequest{
				ClientPhone: "3334445566",
				ServiceType: "Haircut",
			},
			expectError: true,
		},
		{
			name: "empty phone",
			data: &walkInRequest{
				ClientName:  "Mario Rossi",
				ServiceType: "Haircut",
			},
			expectError: true,
		},
		{
			name: "phone with letters",
			data: &walkInRequest{
				ClientName:  "Mario Rossi",
				ClientPhone: "333-CALL-ME",
				ServiceType: "Haircut",
			},
			expectError: true,
		},
		{
			name: "international phone",
			data: &walkInRequest{
				ClientName:  "Mario Rossi",
				ClientPhone: "+39 333 444 5566",
				ServiceType: "Taglio",
			},
			expectError: false,
		},
		{
			name: "unknown service type",
			data: &walkInRequest{
				ClientName:  "Mario Rossi",
				ClientPhone: "3334445566",
				ServiceType: "Perm",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name:        "valid json body",
			body:        `{"client_name":"Luca Bianchi","client_phone":"3391112233","service_type":"Shave"}`,
			expectError: false,
		},
		{
			name:        "malformed json",
			body:        `{"client_name":`,
			expectError: true,
		},
		{
			name:        "valid json failing validation",
			body:        `{"client_name":"","client_phone":"","service_type":"Haircut"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req walkInRequest
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("client@example.com", "email"); err != nil {
		t.Errorf("expected valid email, got %v", err)
	}

	if err := validator.ValidateVar("not-an-email", "email"); err == nil {
		t.Error("expected error for invalid email")
	}
}
