package model

// swagger:model TrafficSign
type TrafficSign struct {
	UUIDBase
	Name        string `gorm:"size:255;not null" json:"name"`
	Category    string `gorm:"size:100;index" json:"category"`
	Description string `gorm:"type:text" json:"description"`
	ImageURL    string `gorm:"size:255" json:"imageUrl"`
}

func (TrafficSign) TableName() string {
	return "traffic_signs"
}
