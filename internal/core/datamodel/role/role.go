package role

import "time"

// Role is one row of the seeded role catalog. The catalog is written once at
// setup time and treated as immutable afterward.
type Role struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Role) TableName() string {
	return "roles"
}

// UserRole links a user to their current role. The unique index on user_id
// backs the single-role-per-user invariant at the storage level.
type UserRole struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    string    `gorm:"column:user_id;uniqueIndex;not null"`
	RoleID    int64     `gorm:"column:role_id;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
