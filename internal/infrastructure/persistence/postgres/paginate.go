package postgres

import (
	"gorm.io/gorm"
)

// Page 一页查询结果
type Page[T any] struct {
	Data  []T
	Total int64
}

// Paginate 对已构建好过滤条件的查询做计数+分页
// limit为0时只返回总数,不查数据行
func Paginate[T any](query *gorm.DB, page, limit int) (*Page[T], error) {
	p := &Page[T]{Data: []T{}}

	if err := query.Count(&p.Total).Error; err != nil {
		return nil, err
	}
	if limit == 0 {
		return p, nil
	}

	offset := (page - 1) * limit
	if err := query.Limit(limit).Offset(offset).Find(&p.Data).Error; err != nil {
		return nil, err
	}
	return p, nil
}
