package model

// Policy is the persisted copy of a catalog entry. Rows are seeded from the
// catalog at deploy time and read-only afterwards.
type Policy struct {
	Slug        string `gorm:"column:slug;primaryKey"`
	Name        string `gorm:"column:name;not null"`
	Description string `gorm:"column:description"`
	Category    string `gorm:"column:category"`
}

func (Policy) TableName() string {
	return "policies"
}
