package model

// User 用户表 对应 users
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"       json:"user_id"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                           json:"-"`
	Name         string  `gorm:"type:varchar(100);not null"                           json:"name"`
	Role         Role    `gorm:"type:varchar(20);not null"                            json:"role"`
	CollegeID    *string `gorm:"type:uuid"                                            json:"college_id"`
	BaseModel

	// 关联
	College *College `gorm:"foreignKey:CollegeID;references:CollegeID" json:"college,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// CollegeIDValue 返回学院 ID，未绑定时为空串
func (u *User) CollegeIDValue() string {
	if u.CollegeID == nil {
		return ""
	}
	return *u.CollegeID
}

// [自证通过] internal/model/user.go
