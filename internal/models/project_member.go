package models

import "gorm.io/gorm"

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleMember Role = "Member"
)

// ProjectMember joins a user to a project with a role. A user appears
// at most once per project (composite unique index), and at most one
// member per project holds the Admin role at any time.
type ProjectMember struct {
	gorm.Model

	ProjectID uint `gorm:"not null;uniqueIndex:idx_project_user"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_project_user"`
	Role      Role `gorm:"not null;default:Member"`

	// Relationships
	Project       Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User          User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedTasks []Task  `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// MakeAdmin promotes the member to Admin within its project. Any member
// currently holding Admin is demoted to Member in the same transaction,
// so readers never observe two admins. Calling it on a member that is
// already Admin is a no-op.
func (m *ProjectMember) MakeAdmin(db *gorm.DB) error {
	if m.Role == RoleAdmin {
		return nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&ProjectMember{}).
			Where("project_id = ? AND role = ?", m.ProjectID, RoleAdmin).
			Update("role", RoleMember).Error; err != nil {
			return err
		}

		return tx.Model(m).Update("role", RoleAdmin).Error
	})

	if err != nil {
		return err
	}

	m.Role = RoleAdmin
	return nil
}
