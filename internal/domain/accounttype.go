package domain

// Account type constants define the allowed account types.
const (
	TypeCustomer = "CUSTOMER"
	TypeTrainer  = "TRAINER"
	TypeAdmin    = "ADMIN"
)

// ValidAccountTypes returns the set of valid account types.
func ValidAccountTypes() []string {
	return []string{TypeCustomer, TypeTrainer, TypeAdmin}
}

// IsValidAccountType checks whether the given string is a valid account type.
func IsValidAccountType(t string) bool {
	for _, v := range ValidAccountTypes() {
		if v == t {
			return true
		}
	}
	return false
}
