package models

// All lists the tables in dependency order; migrations create them in this
// order and drops run in reverse.
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Doctor{},
		&Appointment{},
		&AuditLog{},
	}
}
