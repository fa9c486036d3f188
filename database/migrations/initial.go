package migrations

import (
	"github.com/shashiranjanraj/mithai/app/models"
	"github.com/shashiranjanraj/mithai/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_sweets_table", &CreateSweetsTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: sweets --------

type CreateSweetsTable struct{}

func (m *CreateSweetsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Sweet{})
}

func (m *CreateSweetsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("sweets")
}
