package model

// Plant is a production site. Plant holds the short plant code (e.g. "1100").
type Plant struct {
	PlantID   int     `gorm:"column:plant_id;primaryKey;autoIncrement"`
	Plant     string  `gorm:"column:plant;not null"`
	Postcode  *string `gorm:"column:postcode"`
	City      *string `gorm:"column:city"`
	Name      *string `gorm:"column:name"`
	IsDeleted Flag    `gorm:"column:is_deleted;type:smallint;not null"`
	UserID    *int    `gorm:"column:user_id"`
}

func (Plant) TableName() string { return "ms_plant" }
