package verification

import (
	"testing"

	apierrors "idvdemo/internal/pkg/errors"
)

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		req      Request
		wantCode string
		wantMsg  string
	}{
		{
			name:     "missing fields listed in order",
			product:  CrossCheck,
			req:      Request{LastName: "Doe"},
			wantCode: apierrors.ErrCodeMissingRequiredFields,
			wantMsg:  "Missing required fields: firstName, phone",
		},
		{
			name:     "whitespace counts as missing",
			product:  DOB,
			req:      Request{FirstName: "  ", LastName: "Doe", DateOfBirth: "1990-01-15"},
			wantCode: apierrors.ErrCodeMissingRequiredFields,
		},
		{
			name:     "short phone",
			product:  CrossCheck,
			req:      Request{FirstName: "Jane", LastName: "Doe", Phone: "555-1234"},
			wantCode: apierrors.ErrCodeInvalidPhoneFormat,
		},
		{
			name:     "phone checked before email",
			product:  CrossCheck,
			req:      Request{FirstName: "Jane", LastName: "Doe", Phone: "123", Email: "nope"},
			wantCode: apierrors.ErrCodeInvalidPhoneFormat,
		},
		{
			name:     "bad email",
			product:  CrossCheck,
			req:      Request{FirstName: "Jane", LastName: "Doe", Phone: "5551234567", Email: "jane@nowhere"},
			wantCode: apierrors.ErrCodeInvalidEmailFormat,
		},
		{
			name:     "bare nine digit ssn",
			product:  SSN,
			req:      Request{FirstName: "Jane", LastName: "Doe", Phone: "5551234567", SSN: "123456789"},
			wantCode: apierrors.ErrCodeInvalidSSNFormat,
		},
		{
			name:     "impossible date",
			product:  DOB,
			req:      Request{FirstName: "Jane", LastName: "Doe", DateOfBirth: "1990-02-30"},
			wantCode: apierrors.ErrCodeInvalidDateFormat,
		},
		{
			name:    "valid crosscheck",
			product: CrossCheck,
			req:     Request{FirstName: "Jane", LastName: "Doe", Phone: "(555) 123-4567", Email: "jane@example.com"},
		},
		{
			name:    "valid ssn last four",
			product: SSN,
			req:     Request{FirstName: "Jane", LastName: "Doe", Phone: "5551234567", SSN: "6789"},
		},
		{
			name:    "valid dob us layout",
			product: DOB,
			req:     Request{FirstName: "Jane", LastName: "Doe", DateOfBirth: "01/15/1990"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(tt.product)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %s, got nil", tt.wantCode)
			}
			if err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", err.Code, tt.wantCode)
			}
			if err.Label != apierrors.LabelValidation {
				t.Errorf("label = %s", err.Label)
			}
			if tt.wantMsg != "" && err.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Message, tt.wantMsg)
			}
		})
	}
}

func TestRequest_Upstream(t *testing.T) {
	req := Request{
		FirstName:   " Jane ",
		LastName:    "Doe",
		Phone:       "(555) 123-4567",
		DateOfBirth: "01/15/1990",
		SSN:         "123-45-6789",
	}
	u := req.upstream()

	if u.FirstName != "Jane" {
		t.Errorf("first name = %q", u.FirstName)
	}
	if u.Phone != "+15551234567" {
		t.Errorf("phone = %q", u.Phone)
	}
	if u.DateOfBirth != "1990-01-15" {
		t.Errorf("dob = %q", u.DateOfBirth)
	}
	if u.SSN != "123456789" {
		t.Errorf("ssn = %q", u.SSN)
	}
}
