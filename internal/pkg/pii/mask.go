package pii

const (
	SSNMask   = "***masked***"
	phoneMask = "***-***-"
)

// Phone keeps only the last four digits.
func Phone(phone string) string {
	digits := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			digits = append(digits, phone[i])
		}
	}
	if len(digits) < 4 {
		return phoneMask + "****"
	}
	return phoneMask + string(digits[len(digits)-4:])
}

func SSN(ssn string) string {
	if ssn == "" {
		return ""
	}
	return SSNMask
}

// Email is logged as-is.
func Email(email string) string {
	return email
}
