package implementation

import (
	"context"

	"line-rag-assistant/internal/entity"
	"line-rag-assistant/internal/mapper"
	"line-rag-assistant/internal/model"
	"line-rag-assistant/internal/repository/contract"

	"gorm.io/gorm"
)

type KnowledgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeItemMapper
}

func NewKnowledgeRepository(db *gorm.DB) contract.KnowledgeRepository {
	return &KnowledgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeItemMapper(),
	}
}

func (r *KnowledgeRepositoryImpl) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&model.KnowledgeItem{})
}

func (r *KnowledgeRepositoryImpl) Create(ctx context.Context, item *entity.KnowledgeItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeRepositoryImpl) FindAll(ctx context.Context) ([]*entity.KnowledgeItem, error) {
	var models []*model.KnowledgeItem
	// Insertion order is the tie-break order for equal distances downstream,
	// so the scan must be deterministic.
	if err := r.db.WithContext(ctx).Order("id asc").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *KnowledgeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.KnowledgeItem{}).Count(&count).Error
	return count, err
}

func (r *KnowledgeRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.KnowledgeItem{}).Error
}
