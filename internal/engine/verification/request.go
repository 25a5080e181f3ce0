package verification

import (
	"strings"

	apierrors "idvdemo/internal/pkg/errors"
	"idvdemo/internal/pkg/validator"
)

type Address struct {
	StreetAddress string `json:"streetAddress,omitempty"`
	Unit          string `json:"unit,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	Country       string `json:"country,omitempty"`
}

// Request is the browser-facing body shared by every product.
type Request struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	MiddleName  string   `json:"middleName,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	DateOfBirth string   `json:"dateOfBirth,omitempty"`
	SSN         string   `json:"ssn,omitempty"`
	Address     *Address `json:"address,omitempty"`
	IPAddress   string   `json:"ipAddress,omitempty"`
}

func (r *Request) field(name string) string {
	switch name {
	case "firstName":
		return r.FirstName
	case "lastName":
		return r.LastName
	case "phone":
		return r.Phone
	case "dateOfBirth":
		return r.DateOfBirth
	case "ssn":
		return r.SSN
	}
	return ""
}

// Validate checks presence, then phone, email, SSN and date formats, stopping at the first failure.
func (r *Request) Validate(p Product) *apierrors.APIError {
	var missing []string
	for _, name := range p.Required() {
		if strings.TrimSpace(r.field(name)) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return apierrors.Validation(apierrors.ErrCodeMissingRequiredFields,
			"Missing required fields: "+strings.Join(missing, ", "))
	}

	if r.Phone != "" {
		if err := validator.ValidatePhone(r.Phone); err != nil {
			return apierrors.Validation(apierrors.ErrCodeInvalidPhoneFormat, "Invalid phone number format")
		}
	}
	if r.Email != "" {
		if err := validator.ValidateEmail(r.Email); err != nil {
			return apierrors.Validation(apierrors.ErrCodeInvalidEmailFormat, "Invalid email format")
		}
	}
	if r.SSN != "" {
		if err := validator.ValidateSSN(r.SSN); err != nil {
			return apierrors.Validation(apierrors.ErrCodeInvalidSSNFormat, "Invalid SSN format. Use XXX-XX-XXXX or last 4 digits")
		}
	}
	if r.DateOfBirth != "" {
		if _, err := validator.ParseDate(r.DateOfBirth); err != nil {
			return apierrors.Validation(apierrors.ErrCodeInvalidDateFormat, "Invalid date of birth")
		}
	}
	return nil
}

// upstreamRequest is the vendor's expected shape with normalized values.
type upstreamRequest struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	MiddleName  string   `json:"middleName,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	DateOfBirth string   `json:"dateOfBirth,omitempty"`
	SSN         string   `json:"ssn,omitempty"`
	Address     *Address `json:"address,omitempty"`
	IPAddress   string   `json:"ipAddress,omitempty"`
}

// upstream must only be called on a validated request.
func (r *Request) upstream() upstreamRequest {
	u := upstreamRequest{
		FirstName:  strings.TrimSpace(r.FirstName),
		LastName:   strings.TrimSpace(r.LastName),
		MiddleName: strings.TrimSpace(r.MiddleName),
		Email:      strings.TrimSpace(r.Email),
		Address:    r.Address,
		IPAddress:  r.IPAddress,
	}
	if r.Phone != "" {
		u.Phone = validator.NormalizePhone(r.Phone)
	}
	if r.DateOfBirth != "" {
		u.DateOfBirth, _ = validator.NormalizeDate(r.DateOfBirth)
	}
	if r.SSN != "" {
		u.SSN = validator.NormalizeSSN(r.SSN)
	}
	return u
}
