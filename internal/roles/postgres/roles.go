package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	profileDatamodel "github.com/mentorhub/mentorhub/internal/core/datamodel/profile"
	roleDatamodel "github.com/mentorhub/mentorhub/internal/core/datamodel/role"
	"github.com/mentorhub/mentorhub/internal/roles"
)

type RolesRepository struct {
	db *gorm.DB
}

func NewRolesRepository(db *gorm.DB) roles.RepositoryAPI {
	return &RolesRepository{db: db}
}

func (r *RolesRepository) GetRoleByName(ctx context.Context, name roles.Name) (*roleDatamodel.Role, error) {
	var role roleDatamodel.Role
	err := r.db.WithContext(ctx).Where("name = ?", string(name)).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *RolesRepository) CreateRole(ctx context.Context, name roles.Name) (*roleDatamodel.Role, error) {
	role := &roleDatamodel.Role{Name: string(name)}
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

func (r *RolesRepository) GetRoleNamesForUser(ctx context.Context, userID string) ([]roles.Name, error) {
	query := `SELECT r.name
	          FROM roles r
	          JOIN user_roles ur ON r.id = ur.role_id
	          WHERE ur.user_id = ?`

	rows, err := r.db.WithContext(ctx).Raw(query, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []roles.Name
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, roles.Name(name))
	}
	return names, rows.Err()
}

func (r *RolesRepository) HasAssignment(ctx context.Context, userID string, roleID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&roleDatamodel.UserRole{}).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RolesRepository) InsertAssignment(ctx context.Context, userID string, roleID int64) error {
	assignment := &roleDatamodel.UserRole{
		UserID: userID,
		RoleID: roleID,
	}
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *RolesRepository) DeleteAssignments(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&roleDatamodel.UserRole{}).Error
}

func (r *RolesRepository) CountAssignmentsByRole(ctx context.Context) (map[roles.Name]int64, error) {
	query := `SELECT r.name, COUNT(*)
	          FROM user_roles ur
	          JOIN roles r ON r.id = ur.role_id
	          GROUP BY r.name`

	rows, err := r.db.WithContext(ctx).Raw(query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[roles.Name]int64)
	for rows.Next() {
		var name string
		var count int64
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		counts[roles.Name(name)] = count
	}
	return counts, rows.Err()
}

func (r *RolesRepository) GetMentorProfile(ctx context.Context, userID string) (*profileDatamodel.MentorProfile, error) {
	var prof profileDatamodel.MentorProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&prof).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prof, nil
}

func (r *RolesRepository) UpsertMentorProfile(ctx context.Context, userID string, status roles.MentorStatus) error {
	existing, err := r.GetMentorProfile(ctx, userID)
	if err != nil {
		return err
	}
	if existing != nil {
		return r.db.WithContext(ctx).
			Model(&profileDatamodel.MentorProfile{}).
			Where("user_id = ?", userID).
			Updates(map[string]interface{}{
				"status":     string(status),
				"updated_at": time.Now(),
			}).Error
	}
	prof := &profileDatamodel.MentorProfile{
		UserID: userID,
		Status: string(status),
	}
	return r.db.WithContext(ctx).Create(prof).Error
}

func (r *RolesRepository) EnsureMenteeProfile(ctx context.Context, userID string) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&profileDatamodel.MenteeProfile{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&profileDatamodel.MenteeProfile{UserID: userID}).Error
}

func (r *RolesRepository) EnsureAdminProfile(ctx context.Context, userID, email, name string) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&profileDatamodel.AdminProfile{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&profileDatamodel.AdminProfile{
		UserID: userID,
		Email:  email,
		Name:   name,
	}).Error
}

func (r *RolesRepository) InsertAdminProfile(ctx context.Context, userID, email, name string) error {
	return r.db.WithContext(ctx).Create(&profileDatamodel.AdminProfile{
		UserID: userID,
		Email:  email,
		Name:   name,
	}).Error
}

func (r *RolesRepository) DeleteProfiles(ctx context.Context, userID string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", userID).Delete(&profileDatamodel.AdminProfile{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ?", userID).Delete(&profileDatamodel.MentorProfile{}).Error; err != nil {
		return err
	}
	return db.Where("user_id = ?", userID).Delete(&profileDatamodel.MenteeProfile{}).Error
}

func (r *RolesRepository) ListProfileUserIDs(ctx context.Context, role roles.Name) ([]string, error) {
	var userIDs []string
	var err error

	db := r.db.WithContext(ctx)
	switch role {
	case roles.Admin:
		err = db.Model(&profileDatamodel.AdminProfile{}).Pluck("user_id", &userIDs).Error
	case roles.Mentor:
		err = db.Model(&profileDatamodel.MentorProfile{}).Pluck("user_id", &userIDs).Error
	case roles.Mentee:
		err = db.Model(&profileDatamodel.MenteeProfile{}).Pluck("user_id", &userIDs).Error
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

func (r *RolesRepository) Transaction(ctx context.Context, fn func(roles.RepositoryAPI) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RolesRepository{db: tx})
	})
}
