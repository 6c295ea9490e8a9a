package dto

// ListParams carries the common pagination query parameters.
type ListParams struct {
	Limit  int `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}
