package model

// Role представляет роль пользователя
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid сообщает, известна ли роль
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// Permission представляет право на выполнение операции
type Permission string

const (
	PermCreateRequest        Permission = "create_request"
	PermSubmitAnswer         Permission = "submit_answer"
	PermMarkInProgress       Permission = "mark_in_progress"
	PermAssignTest           Permission = "assign_test"
	PermAuthorRecommendation Permission = "author_recommendation"
	PermCompleteTest         Permission = "complete_test"
	PermDeleteRequest        Permission = "delete_request"
	PermViewRecommendation   Permission = "view_recommendation"
)

var rolePermissions = map[Role][]Permission{
	RoleStudent: {
		PermCreateRequest,
		PermSubmitAnswer,
		PermViewRecommendation,
	},
	RoleAdmin: {
		PermMarkInProgress,
		PermAssignTest,
		PermAuthorRecommendation,
		PermCompleteTest,
		PermDeleteRequest,
		PermViewRecommendation,
	},
}

// Can проверяет, есть ли у роли указанное право
func Can(role Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}
