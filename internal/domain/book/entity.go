package book

import (
	"time"
)

// Libro 图书实体(聚合根)
// 作者/出版社/体裁以外键关联目录实体,列表查询时带出名称
type Libro struct {
	ID          uint
	Titulo      string  // 书名
	Precio      float64 // 价格,数据库层 numeric(10,2)
	Disponible  bool    // 是否可借阅
	ImagenURL   string  // 封面图片URL(可为空)
	AutorID     uint
	EditorialID uint
	GeneroID    uint
	// 关联名称,仅在带关系查询时填充
	Autor     string
	Editorial string
	Genero    string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// ListParams 列表查询条件
// 过滤字段为空表示不过滤;Titulo 做模糊匹配
type ListParams struct {
	ID         *uint
	Titulo     string
	Autor      string
	Editorial  string
	Genero     string
	Disponible *bool
	SortBy     string // titulo | precio | autor | editorial | genero | created_at
	SortDir    string // asc | desc
	Page       int
	Limit      int
}

// ListItem 列表行,关联名称已展开
type ListItem struct {
	ID         uint
	Titulo     string
	Precio     float64
	Disponible bool
	ImagenURL  string
	Autor      string
	Editorial  string
	Genero     string
	CreatedAt  time.Time
	DeletedAt  *time.Time
}

// ExportRow CSV 导出行
type ExportRow struct {
	ID         uint
	Titulo     string
	Autor      string
	Editorial  string
	Genero     string
	Precio     float64
	Disponible bool
	ImagenURL  string
}
