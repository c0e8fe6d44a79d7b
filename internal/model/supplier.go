package model

type Supplier struct {
	BaseModel
	Name          string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	ContactPerson string `gorm:"type:varchar(255)" json:"contact_person"`
	Email         string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Phone         string `gorm:"type:varchar(30)" json:"phone"`
	Address       string `gorm:"type:varchar(500)" json:"address"`
}
