package repository

import (
	"context"

	"github.com/embunadw/E-Procurement/internal/dto"
	"github.com/embunadw/E-Procurement/internal/model"

	"gorm.io/gorm"
)

var materialGroupList = listSpec{
	table:       "ms_material_group",
	searchCols:  []string{"material_type", "material_group", "material_group_description"},
	sortCols:    sortSet("material_type", "material_group", "material_group_description"),
	defaultSort: "material_group",
}

// Materials are searched through their group and plant as well.
var materialList = listSpec{
	table: "ms_material",
	searchCols: []string{
		"ms_material.material_number", "ms_material.base_unit", "ms_material.material_description",
		"mg.material_group", "mg.material_type", "mg.material_group_description", "p.name",
	},
	sortCols:    sortSet("material_number", "base_unit", "material_description"),
	defaultSort: "material_number",
}

type MaterialGroupRepository interface {
	List(ctx context.Context, q dto.ListQuery) ([]model.MaterialGroup, int64, error)
	FindByID(ctx context.Context, id int) (*model.MaterialGroup, error)
	// PairTaken reports whether a non-deleted group other than excludeID
	// already uses (materialType, group).
	PairTaken(ctx context.Context, materialType, group string, excludeID int) (bool, error)
	Create(ctx context.Context, g *model.MaterialGroup) error
	Update(ctx context.Context, g *model.MaterialGroup) error
	SoftDelete(ctx context.Context, id int) error
}

type materialGroupRepo struct{ db *gorm.DB }

func NewMaterialGroupRepository(db *gorm.DB) MaterialGroupRepository {
	return &materialGroupRepo{db: db}
}

func (r *materialGroupRepo) List(ctx context.Context, q dto.ListQuery) ([]model.MaterialGroup, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.MaterialGroup{}).Where("is_deleted = ?", model.FlagOff)
	return paginate[model.MaterialGroup](base, materialGroupList, q)
}

func (r *materialGroupRepo) FindByID(ctx context.Context, id int) (*model.MaterialGroup, error) {
	var g model.MaterialGroup
	err := r.db.WithContext(ctx).First(&g, "material_group_id = ?", id).Error
	return &g, err
}

func (r *materialGroupRepo) PairTaken(ctx context.Context, materialType, group string, excludeID int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.MaterialGroup{}).
		Where("material_type = ? AND material_group = ? AND is_deleted = ? AND material_group_id <> ?",
			materialType, group, model.FlagOff, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *materialGroupRepo) Create(ctx context.Context, g *model.MaterialGroup) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *materialGroupRepo) Update(ctx context.Context, g *model.MaterialGroup) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *materialGroupRepo) SoftDelete(ctx context.Context, id int) error {
	return setFlag(ctx, r.db, &model.MaterialGroup{}, "material_group_id", id, "is_deleted", model.FlagOn)
}

// ── Materials ─────────────────────────────────────────────────────────────────

type MaterialRepository interface {
	// List returns materials with MaterialGroup and Plant preloaded.
	List(ctx context.Context, q dto.ListQuery) ([]model.Material, int64, error)
	FindByID(ctx context.Context, id int) (*model.Material, error)
	Create(ctx context.Context, m *model.Material) error
	Update(ctx context.Context, m *model.Material) error
	SoftDelete(ctx context.Context, id int) error
}

type materialRepo struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) MaterialRepository { return &materialRepo{db: db} }

func (r *materialRepo) List(ctx context.Context, q dto.ListQuery) ([]model.Material, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Material{}).
		Joins("LEFT JOIN ms_material_group mg ON mg.material_group_id = ms_material.material_group_id").
		Joins("LEFT JOIN ms_plant p ON p.plant_id = ms_material.plant_id").
		Where("ms_material.is_deleted = ?", model.FlagOff)
	return paginate[model.Material](base, materialList, q, "MaterialGroup", "Plant")
}

func (r *materialRepo) FindByID(ctx context.Context, id int) (*model.Material, error) {
	var m model.Material
	err := r.db.WithContext(ctx).
		Preload("MaterialGroup").
		Preload("Plant").
		First(&m, "material_id = ?", id).Error
	return &m, err
}

func (r *materialRepo) Create(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Omit("MaterialGroup", "Plant").Create(m).Error
}

func (r *materialRepo) Update(ctx context.Context, m *model.Material) error {
	return r.db.WithContext(ctx).Omit("MaterialGroup", "Plant").Save(m).Error
}

func (r *materialRepo) SoftDelete(ctx context.Context, id int) error {
	return setFlag(ctx, r.db, &model.Material{}, "material_id", id, "is_deleted", model.FlagOn)
}

// ── Subcontractors ────────────────────────────────────────────────────────────

type SubcontractorRepository interface {
	List(ctx context.Context) ([]model.Subcontractor, error)
}

type subcontractorRepo struct{ db *gorm.DB }

func NewSubcontractorRepository(db *gorm.DB) SubcontractorRepository {
	return &subcontractorRepo{db: db}
}

func (r *subcontractorRepo) List(ctx context.Context) ([]model.Subcontractor, error) {
	var rows []model.Subcontractor
	err := r.db.WithContext(ctx).Order("id").Find(&rows).Error
	return rows, err
}
