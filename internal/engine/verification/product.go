package verification

type Product string

const (
	CrossCheck Product = "crosscheck"
	DOB        Product = "dob"
	SSN        Product = "ssn"
)

type definition struct {
	service  string
	required []string
}

var definitions = map[Product]definition{
	CrossCheck: {service: "CrossCheck Verification", required: []string{"firstName", "lastName", "phone"}},
	DOB:        {service: "DOB Verification", required: []string{"firstName", "lastName", "dateOfBirth"}},
	SSN:        {service: "SSN Verification", required: []string{"firstName", "lastName", "ssn", "phone"}},
}

// Products lists the supported products in route order.
func Products() []Product {
	return []Product{CrossCheck, DOB, SSN}
}

func (p Product) Service() string {
	return definitions[p].service
}

func (p Product) Required() []string {
	return definitions[p].required
}

func (p Product) Valid() bool {
	_, ok := definitions[p]
	return ok
}
