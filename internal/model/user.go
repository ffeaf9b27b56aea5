package model

import "time"

// Token roles. Staff roles come from ms_user.role; vendor tokens always carry RoleVendor.
const (
	RolePatria  = "patria"
	RoleManager = "manager"
	RoleAdmin   = "admin"
	RoleUser    = "user"
	RoleVendor  = "vendor"
)

// StaffRoles lists every role allowed into the staff portal.
var StaffRoles = []string{RolePatria, RoleManager, RoleUser, RoleAdmin}

// User is a staff account of the procurement portal.
type User struct {
	UserID         int    `gorm:"column:user_id;primaryKey;autoIncrement"`
	Username       string `gorm:"column:username;not null"`
	Password       string `gorm:"column:password;not null"`
	PersonalNumber string `gorm:"column:personal_number"`
	Dept           string `gorm:"column:dept"`
	Department     string `gorm:"column:department"`
	Division       string `gorm:"column:division"`
	EmailSF        string `gorm:"column:email_sf;not null"`
	Role           string `gorm:"column:role;type:varchar(20);not null"`
	CreatedAt      time.Time
	IsDeleted      Flag `gorm:"column:is_deleted;type:smallint;not null"`
}

func (User) TableName() string { return "ms_user" }
