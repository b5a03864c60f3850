package models

import "gorm.io/gorm"

// Project is a named workspace owned by exactly one user. The unique
// index on OwnerID keeps the owner relationship one-to-one.
type Project struct {
	gorm.Model

	Name        string `gorm:"uniqueIndex;not null"`
	Description string
	OwnerID     uint `gorm:"uniqueIndex;not null"`

	// Relationships
	Owner   User            `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// ChangeOwner hands the project to another user. The new owner does not
// have to be a member of the project.
func (p *Project) ChangeOwner(db *gorm.DB, user *User) error {
	if err := db.Model(p).Update("owner_id", user.ID).Error; err != nil {
		return err
	}

	p.OwnerID = user.ID
	return nil
}

// HasAdmin reports whether any member of the project currently holds
// the Admin role.
func (p *Project) HasAdmin(db *gorm.DB) (bool, error) {
	var count int64

	err := db.Model(&ProjectMember{}).
		Where("project_id = ? AND role = ?", p.ID, RoleAdmin).
		Count(&count).Error

	return count > 0, err
}
