package entity

import (
	"time"

	"academic-workflow-be/internal/constant"

	"github.com/google/uuid"
)

type MissionBox struct {
	Id         uuid.UUID
	MissionId  uuid.UUID
	BoxType    constant.BoxType
	OrderIndex int
	State      string
	LastRunAt  *time.Time
	LastError  *string
	Config     map[string]interface{}
	CreatedAt  time.Time
}
