package model

// Food is a named ingredient available for substring lookup. Rows are
// written once at startup and never mutated.
type Food struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// TableName pins the table name so the PostgreSQL teardown can drop it by name
func (Food) TableName() string {
	return "foods"
}
