package domain

const (
	SenderRoleResident = "resident"
	SenderRoleStaff    = "staff"
)

func IsValidSenderRole(value string) bool {
	return value == SenderRoleResident || value == SenderRoleStaff
}
