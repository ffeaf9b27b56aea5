package repository

import (
	"context"

	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/model"

	"gorm.io/gorm"
)

var kbliList = listSpec{
	table:       "ms_kbli",
	searchCols:  []string{"code", "title", "year", "description"},
	sortCols:    sortSet("code", "title", "year", "description"),
	defaultSort: "code",
}

// KbliRepository only ever returns enabled rows.
type KbliRepository interface {
	List(ctx context.Context, q dto.ListQuery) ([]model.Kbli, int64, error)
	FindByID(ctx context.Context, id int) (*model.Kbli, error)
	CodeTaken(ctx context.Context, code string, excludeID int) (bool, error)
	// CountEnabled counts how many of ids are enabled KBLI rows.
	CountEnabled(ctx context.Context, ids []int) (int64, error)
	Create(ctx context.Context, k *model.Kbli) error
	Update(ctx context.Context, k *model.Kbli) error
	Disable(ctx context.Context, id int) error
}

type kbliRepo struct{ db *gorm.DB }

func NewKbliRepository(db *gorm.DB) KbliRepository { return &kbliRepo{db: db} }

func (r *kbliRepo) enabled(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Kbli{}).Where("enable = ?", model.FlagOn)
}

func (r *kbliRepo) List(ctx context.Context, q dto.ListQuery) ([]model.Kbli, int64, error) {
	return paginate[model.Kbli](r.enabled(ctx), kbliList, q)
}

func (r *kbliRepo) FindByID(ctx context.Context, id int) (*model.Kbli, error) {
	var k model.Kbli
	err := r.enabled(ctx).First(&k, "id = ?", id).Error
	return &k, err
}

func (r *kbliRepo) CodeTaken(ctx context.Context, code string, excludeID int) (bool, error) {
	var n int64
	err := r.enabled(ctx).Where("code = ? AND id <> ?", code, excludeID).Count(&n).Error
	return n > 0, err
}

func (r *kbliRepo) CountEnabled(ctx context.Context, ids []int) (int64, error) {
	var n int64
	if len(ids) == 0 {
		return 0, nil
	}
	err := r.enabled(ctx).Where("id IN ?", ids).Count(&n).Error
	return n, err
}

func (r *kbliRepo) Create(ctx context.Context, k *model.Kbli) error {
	return r.db.WithContext(ctx).Create(k).Error
}

func (r *kbliRepo) Update(ctx context.Context, k *model.Kbli) error {
	return r.db.WithContext(ctx).Save(k).Error
}

func (r *kbliRepo) Disable(ctx context.Context, id int) error {
	return setFlag(ctx, r.db, &model.Kbli{}, "id", id, "enable", model.FlagOff)
}
