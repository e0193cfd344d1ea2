package dto

type CreateIssueReq struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description string  `json:"description"`
	Status      string  `json:"status" binding:"required"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	SprintID    *string `json:"sprint_id"`
	AssigneeID  *string `json:"assignee_id"`
}

// UpdateIssueReq is a partial update; nil fields are left untouched.
type UpdateIssueReq struct {
	Status   *string `json:"status"`
	Priority *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
}

// IssueOrderItem is one row of a board reorder computed client-side after a
// drag-and-drop.
type IssueOrderItem struct {
	ID     string `json:"id" binding:"required"`
	Status string `json:"status" binding:"required"`
	Order  int    `json:"order"`
}

type UpdateIssueOrderReq struct {
	Issues []IssueOrderItem `json:"issues" binding:"required,min=1,dive"`
}
