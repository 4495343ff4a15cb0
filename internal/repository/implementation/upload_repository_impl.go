package implementation

import (
	"context"
	"errors"

	"pdf-summarizer-be/internal/entity"
	"pdf-summarizer-be/internal/mapper"
	"pdf-summarizer-be/internal/model"
	"pdf-summarizer-be/internal/repository/contract"
	"pdf-summarizer-be/internal/repository/specification"

	"gorm.io/gorm"
)

type UploadRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UploadMapper
}

func NewUploadRepository(db *gorm.DB) contract.UploadRepository {
	return &UploadRepositoryImpl{
		db:     db,
		mapper: mapper.NewUploadMapper(),
	}
}

func (r *UploadRepositoryImpl) Create(ctx context.Context, upload *entity.Upload) error {
	m := r.mapper.ToModel(upload)
	if err := r.db.WithContext(ctx).Omit("Summaries").Create(m).Error; err != nil {
		return err
	}
	upload.Id = m.Id
	upload.UploadDate = m.UploadDate.UTC()
	return nil
}

func (r *UploadRepositoryImpl) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	// Dependency order: children first so the delete works with or without FK cascades.
	if err := db.Where("upload_id = ?", id).Delete(&model.Summary{}).Error; err != nil {
		return err
	}
	return db.Delete(&model.Upload{}, id).Error
}

func (r *UploadRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Upload, error) {
	var m model.Upload
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UploadRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Upload, error) {
	var models []*model.Upload
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *UploadRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Upload{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
