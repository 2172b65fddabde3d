package user

import "context"

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (Admin, error)
	GetByID(ctx context.Context, id string) (Admin, error)
}
