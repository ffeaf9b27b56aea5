package repository

import (
	"context"

	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/model"

	"gorm.io/gorm"
)

var plantList = listSpec{
	table:       "ms_plant",
	searchCols:  []string{"plant", "city", "name"},
	sortCols:    sortSet("plant", "postcode", "city", "name"),
	defaultSort: "plant",
}

type PlantRepository interface {
	List(ctx context.Context, q dto.ListQuery) ([]model.Plant, int64, error)
	FindByID(ctx context.Context, id int) (*model.Plant, error)
	CodeTaken(ctx context.Context, code string, excludeID int) (bool, error)
	Create(ctx context.Context, p *model.Plant) error
	Update(ctx context.Context, p *model.Plant) error
	SoftDelete(ctx context.Context, id int) error
}

type plantRepo struct{ db *gorm.DB }

func NewPlantRepository(db *gorm.DB) PlantRepository { return &plantRepo{db: db} }

func (r *plantRepo) List(ctx context.Context, q dto.ListQuery) ([]model.Plant, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Plant{}).Where("is_deleted = ?", model.FlagOff)
	return paginate[model.Plant](base, plantList, q)
}

func (r *plantRepo) FindByID(ctx context.Context, id int) (*model.Plant, error) {
	var p model.Plant
	err := r.db.WithContext(ctx).First(&p, "plant_id = ?", id).Error
	return &p, err
}

func (r *plantRepo) CodeTaken(ctx context.Context, code string, excludeID int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Plant{}).
		Where("plant = ? AND is_deleted = ? AND plant_id <> ?", code, model.FlagOff, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *plantRepo) Create(ctx context.Context, p *model.Plant) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *plantRepo) Update(ctx context.Context, p *model.Plant) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *plantRepo) SoftDelete(ctx context.Context, id int) error {
	return setFlag(ctx, r.db, &model.Plant{}, "plant_id", id, "is_deleted", model.FlagOn)
}
