package domain

type Rating struct {
	Base
	UserID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_rating_pair;index" json:"userId"`
	RatedBy string `gorm:"type:varchar(36);not null;uniqueIndex:idx_rating_pair" json:"ratedBy"`
	Rating  int    `gorm:"not null" json:"rating"`
}
