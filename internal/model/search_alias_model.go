package model

import "github.com/google/uuid"

type SearchAlias struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Term          string    `gorm:"type:varchar(255);not null;index"`
	CanonicalTerm string    `gorm:"type:varchar(255);not null;index"`
}

func (SearchAlias) TableName() string {
	return "search_aliases"
}
