package user

import "errors"

var (
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrEmployeeAccessRequired = errors.New("employee access required")
	ErrAdminNotFound          = errors.New("admin not found")
)
