package profile

import "time"

// AdminProfile mirrors the admin_data table. Timestamp defaults live in the
// SQL migrations; gorm fills CreatedAt/UpdatedAt on write.
type AdminProfile struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    string    `gorm:"column:user_id;uniqueIndex;not null"`
	Email     string    `gorm:"column:email;not null"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (AdminProfile) TableName() string {
	return "admin_data"
}

// MentorProfile mirrors the mentor_data table. Status carries the mentor
// application lifecycle; only an approved mentor holds the full mentor role.
type MentorProfile struct {
	ID         int64     `gorm:"primaryKey"`
	UserID     string    `gorm:"column:user_id;uniqueIndex;not null"`
	Status     string    `gorm:"column:status;not null;default:pending"`
	Name       string    `gorm:"column:name"`
	Email      string    `gorm:"column:email"`
	Bio        string    `gorm:"column:bio"`
	Expertise  string    `gorm:"column:expertise"`
	Experience string    `gorm:"column:experience"`
	LinkedIn   string    `gorm:"column:linkedin_url"`
	Badge      string    `gorm:"column:badge"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (MentorProfile) TableName() string {
	return "mentor_data"
}

// MenteeProfile mirrors the mentee_data table. Mentees carry no status
// concept, a row simply means the role grant is paired up.
type MenteeProfile struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    string    `gorm:"column:user_id;uniqueIndex;not null"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Goals     string    `gorm:"column:goals"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (MenteeProfile) TableName() string {
	return "mentee_data"
}
