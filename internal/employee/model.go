package employee

import (
	"gorm.io/gorm"
)

type Employee struct {
	gorm.Model
	Name               string `json:"name"`
	LastName           string `json:"lastName"`
	Role               string `json:"role"`
	Email              string `json:"email" gorm:"unique"`
	Phone              string `json:"phone"`
	Photo              string `json:"photo"`
	Password           string `json:"-"`
	NeedsPasswordReset bool   `json:"-"`
	IsAdmin            bool   `json:"isAdmin"`
}

// FullName é o nome usado no snapshot das comissões.
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.Name
	}
	return e.Name + " " + e.LastName
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Employee{})
}
