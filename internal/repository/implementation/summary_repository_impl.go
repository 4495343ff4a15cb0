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

type SummaryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SummaryMapper
}

func NewSummaryRepository(db *gorm.DB) contract.SummaryRepository {
	return &SummaryRepositoryImpl{
		db:     db,
		mapper: mapper.NewSummaryMapper(),
	}
}

func (r *SummaryRepositoryImpl) Create(ctx context.Context, summary *entity.Summary) error {
	m := r.mapper.ToModel(summary)
	if err := r.db.WithContext(ctx).Omit("PromptTemplate").Create(m).Error; err != nil {
		return err
	}
	*summary = *r.mapper.ToEntity(m)
	return nil
}

func (r *SummaryRepositoryImpl) DeleteByUploadID(ctx context.Context, uploadID uint) error {
	return r.db.WithContext(ctx).Where("upload_id = ?", uploadID).Delete(&model.Summary{}).Error
}

func (r *SummaryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Summary, error) {
	var m model.Summary
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Summary{}), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SummaryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Summary, error) {
	var models []*model.Summary
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Summary{}), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SummaryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Summary{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
