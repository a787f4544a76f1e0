package model

import "time"

// JobType 岗位类型
type JobType string

const (
	JobTypeInternship JobType = "internship"
	JobTypePartTime   JobType = "part-time"
	JobTypeFullTime   JobType = "full-time"
)

// Valid 是否为合法岗位类型
func (t JobType) Valid() bool {
	switch t {
	case JobTypeInternship, JobTypePartTime, JobTypeFullTime:
		return true
	}
	return false
}

// Job 岗位表 对应 jobs
// 仅由本学院管理员创建，创建后不可修改
type Job struct {
	JobID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"job_id"`
	Title        string    `gorm:"type:varchar(255);not null"                     json:"title"`
	Description  string    `gorm:"type:text;not null"                             json:"description"`
	Location     string    `gorm:"type:varchar(255);not null"                     json:"location"`
	Type         JobType   `gorm:"type:varchar(20);not null;default:'full-time'"  json:"type"`
	Deadline     time.Time `gorm:"type:date;not null"                             json:"deadline"`
	SalaryRange  *string   `gorm:"type:varchar(100)"                              json:"salary_range,omitempty"`
	Requirements *string   `gorm:"type:text"                                      json:"requirements,omitempty"`
	CollegeID    string    `gorm:"type:uuid;not null;index"                       json:"college_id"`
	PostedBy     string    `gorm:"type:uuid;not null"                             json:"posted_by"`
	BaseModel

	// 关联
	College *College `gorm:"foreignKey:CollegeID;references:CollegeID" json:"college,omitempty"`
	Poster  *User    `gorm:"foreignKey:PostedBy;references:UserID"     json:"poster,omitempty"`
}

// TableName 指定表名
func (Job) TableName() string { return "jobs" }

// IsActive 截止日期晚于 now 即为进行中（读取时计算，不落库）
func (j *Job) IsActive(now time.Time) bool {
	return j.Deadline.After(now)
}
