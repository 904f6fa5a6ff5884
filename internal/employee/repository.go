package employee

import (
	"gorm.io/gorm"
)

type Repository interface {
	FindByEmail(db *gorm.DB, email string) (*Employee, error)
	Save(db *gorm.DB, e *Employee) error
	FindByID(db *gorm.DB, id uint) (*Employee, error)
	ListAll(db *gorm.DB) ([]Employee, error)
	Update(db *gorm.DB, id uint, data *Employee) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) FindByEmail(db *gorm.DB, email string) (*Employee, error) {
	var e Employee
	if err := db.Where("email = ?", email).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repositoryImpl) Save(db *gorm.DB, e *Employee) error {
	return db.Save(e).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Employee, error) {
	var e Employee
	err := db.First(&e, id).Error
	return &e, err
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]Employee, error) {
	var employees []Employee
	err := db.Order("name ASC").Find(&employees).Error
	return employees, err
}

// Update altera apenas os dados de perfil. Senha e flag de admin têm
// fluxos próprios; o snapshot nas comissões já criadas nunca é reescrito.
func (r *repositoryImpl) Update(db *gorm.DB, id uint, data *Employee) error {
	var existing Employee
	if err := db.First(&existing, id).Error; err != nil {
		return err
	}

	existing.Name = data.Name
	existing.LastName = data.LastName
	existing.Role = data.Role
	existing.Email = data.Email
	existing.Phone = data.Phone
	existing.Photo = data.Photo

	return db.Save(&existing).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&Employee{}, id).Error
}
