package dto

import "time"

type CreateSprintReq struct {
	Name      string    `json:"name" binding:"required,max=100"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required,gtefield=StartDate"`
}

type UpdateSprintStatusReq struct {
	Status string `json:"status" binding:"required"`
}
