package models

import "time"

// BaseModel 所有表共用的主键与时间戳
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaginationResult 分页结果
type PaginationResult struct {
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int64       `json:"total_pages"`
	Data       interface{} `json:"data"`
}

// NewPaginationResult 创建一个新的分页结果对象
func NewPaginationResult(data interface{}, total int64, page, pageSize int) PaginationResult {
	return PaginationResult{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + int64(pageSize) - 1) / int64(pageSize),
		Data:       data,
	}
}
