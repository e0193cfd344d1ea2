package dto

type CreateProjectReq struct {
	Name        string `json:"name" binding:"required,max=50"`
	Key         string `json:"key" binding:"required,alphanum,min=2,max=25"`
	Description string `json:"description" binding:"max=500"`
}
