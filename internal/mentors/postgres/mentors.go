package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	profileDatamodel "github.com/mentorhub/mentorhub/internal/core/datamodel/profile"
	"github.com/mentorhub/mentorhub/internal/mentors"
	"github.com/mentorhub/mentorhub/internal/roles"
)

type MentorsRepository struct {
	db *gorm.DB
}

func NewMentorsRepository(db *gorm.DB) mentors.RepositoryAPI {
	return &MentorsRepository{db: db}
}

func (r *MentorsRepository) GetByUserID(ctx context.Context, userID string) (*mentors.Application, error) {
	var prof profileDatamodel.MentorProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&prof).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return fromDataModel(&prof), nil
}

func (r *MentorsRepository) ListByStatus(ctx context.Context, status roles.MentorStatus) ([]*mentors.Application, error) {
	var profs []*profileDatamodel.MentorProfile
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Find(&profs).Error
	if err != nil {
		return nil, err
	}
	return fromDataModels(profs), nil
}

func (r *MentorsRepository) ListAll(ctx context.Context) ([]*mentors.Application, error) {
	var profs []*profileDatamodel.MentorProfile
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&profs).Error
	if err != nil {
		return nil, err
	}
	return fromDataModels(profs), nil
}

func (r *MentorsRepository) UpdateStatus(ctx context.Context, userID string, status roles.MentorStatus) error {
	return r.db.WithContext(ctx).
		Model(&profileDatamodel.MentorProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		}).Error
}

func fromDataModel(p *profileDatamodel.MentorProfile) *mentors.Application {
	return &mentors.Application{
		UserID:     p.UserID,
		Status:     roles.MentorStatus(p.Status),
		Name:       p.Name,
		Email:      p.Email,
		Bio:        p.Bio,
		Expertise:  p.Expertise,
		Experience: p.Experience,
		LinkedIn:   p.LinkedIn,
		Badge:      p.Badge,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func fromDataModels(profs []*profileDatamodel.MentorProfile) []*mentors.Application {
	apps := make([]*mentors.Application, 0, len(profs))
	for _, p := range profs {
		apps = append(apps, fromDataModel(p))
	}
	return apps
}
