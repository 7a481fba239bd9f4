package model

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	UserID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`
	UserUsername       string    `gorm:"type:varchar(64);not null;uniqueIndex;column:user_username" json:"user_username"`
	UserName           string    `gorm:"type:varchar(120);not null;column:user_name" json:"user_name"`
	UserEmail          *string   `gorm:"type:varchar(255);column:user_email" json:"user_email,omitempty"`
	UserImage          *string   `gorm:"type:varchar(255);column:user_image" json:"user_image,omitempty"`
	UserRole           string    `gorm:"type:varchar(16);not null;default:'STUDENT';column:user_role" json:"user_role"`
	UserOrganizationID uuid.UUID `gorm:"type:uuid;not null;index;column:user_organization_id" json:"user_organization_id"`
	UserIsActive       bool      `gorm:"not null;default:true;column:user_is_active" json:"user_is_active"`

	UserCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:user_created_at" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:user_updated_at" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }
