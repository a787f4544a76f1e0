package model

// College 学院表 对应 colleges（租户）
// 创建后不可修改
type College struct {
	CollegeID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"college_id"`
	Name      string `gorm:"type:varchar(255);not null;uniqueIndex:uq_colleges_name" json:"name"`
	Email     string `gorm:"type:varchar(255);not null;default:''"         json:"email"`
	Location  string `gorm:"type:varchar(255);not null;default:''"         json:"location"`
	BaseModel
}

// TableName 指定表名
func (College) TableName() string { return "colleges" }
