package model

import "time"

// ApplicationStatus 投递状态
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Valid 状态只允许 pending / accepted / rejected
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Application 投递表 对应 applications
// (job_id, student_id) 唯一；不删除，仅通过状态变更修改
type Application struct {
	ApplicationID string            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"               json:"application_id"`
	JobID         string            `gorm:"type:uuid;not null;uniqueIndex:uq_applications_job_student"   json:"job_id"`
	StudentID     string            `gorm:"type:uuid;not null;uniqueIndex:uq_applications_job_student"   json:"student_id"`
	Status        ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'"                  json:"status"`
	AppliedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"                           json:"applied_at"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"                           json:"updated_at"`

	// 关联
	Job     *Job  `gorm:"foreignKey:JobID;references:JobID"       json:"job,omitempty"`
	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
}

// TableName 指定表名
func (Application) TableName() string { return "applications" }
