package model

// MaterialGroup classifies materials. (MaterialType, Group) is unique among
// non-deleted rows; the service enforces it.
type MaterialGroup struct {
	MaterialGroupID int     `gorm:"column:material_group_id;primaryKey;autoIncrement"`
	MaterialType    string  `gorm:"column:material_type;not null"`
	Group           string  `gorm:"column:material_group;not null"`
	Description     *string `gorm:"column:material_group_description"`
	IsDeleted       Flag    `gorm:"column:is_deleted;type:smallint;not null"`
	UserID          *int    `gorm:"column:user_id"`
}

func (MaterialGroup) TableName() string { return "ms_material_group" }

// Material is a part number stocked at a plant.
type Material struct {
	MaterialID          int     `gorm:"column:material_id;primaryKey;autoIncrement"`
	MaterialGroupID     *int    `gorm:"column:material_group_id"`
	MaterialNumber      string  `gorm:"column:material_number;not null"`
	BaseUnit            *string `gorm:"column:base_unit"`
	PlantID             *int    `gorm:"column:plant_id"`
	IsDeleted           Flag    `gorm:"column:is_deleted;type:smallint;not null"`
	MaterialDescription *string `gorm:"column:material_description"`

	MaterialGroup *MaterialGroup `gorm:"foreignKey:MaterialGroupID;references:MaterialGroupID"`
	Plant         *Plant         `gorm:"foreignKey:PlantID;references:PlantID"`
}

func (Material) TableName() string { return "ms_material" }

// Subcontractor is an entry of the subcontracting catalogue.
type Subcontractor struct {
	ID            int     `gorm:"column:id;primaryKey;autoIncrement"`
	Material      string  `gorm:"column:material"`
	Description   *string `gorm:"column:description"`
	MaterialGroup *string `gorm:"column:material_group"`
	UOM           *string `gorm:"column:uom"`
}

func (Subcontractor) TableName() string { return "subcontractor" }
