package model

// Role 用户角色
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid 是否为已知角色
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// Capability 服务端按操作校验的能力项
type Capability int

const (
	CapViewJobs Capability = iota + 1
	CapPostJob
	CapApply
	CapViewOwnApplications
	CapReviewApplications
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleStudent: {
		CapViewJobs:            true,
		CapApply:               true,
		CapViewOwnApplications: true,
	},
	RoleAdmin: {
		CapViewJobs:           true,
		CapPostJob:            true,
		CapReviewApplications: true,
	},
}

// Can 判断角色是否具备某项能力；未知角色不具备任何能力
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}
