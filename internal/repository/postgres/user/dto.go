package user

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
	Role   *string
}

type GetListResponse struct {
	ID        int     `json:"id"`
	UserID    *string `json:"user_id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Nip       *string `json:"nip"`
	Position  *string `json:"position"`
	Role      *string `json:"role"`
}

type CreateRequest struct {
	FirstName *string `json:"first_name" form:"first_name"`
	LastName  *string `json:"last_name" form:"last_name"`
	Email     *string `json:"email" form:"email"`
	Nip       *string `json:"nip" form:"nip"`
	Position  *string `json:"position" form:"position"`
	Password  *string `json:"password" form:"password"`
	Role      *string `json:"role" form:"role"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:users"`

	ID        int       `json:"id" bun:"-"`
	UserID    *string   `json:"user_id" bun:"user_id"`
	FirstName *string   `json:"first_name" bun:"first_name"`
	LastName  *string   `json:"last_name" bun:"last_name"`
	Email     *string   `json:"email" bun:"email"`
	Nip       *string   `json:"nip" bun:"nip"`
	Position  *string   `json:"position" bun:"position"`
	Password  *string   `json:"-" bun:"password"`
	Role      *string   `json:"role" bun:"role"`
	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy string    `json:"-" bun:"created_by"`
}

type SignInRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type UpdateRequest struct {
	UserID    *string `json:"user_id" form:"user_id"`
	FirstName *string `json:"first_name" form:"first_name"`
	LastName  *string `json:"last_name" form:"last_name"`
	Nip       *string `json:"nip" form:"nip"`
	Position  *string `json:"position" form:"position"`
	Password  *string `json:"password" form:"password"`
	Role      *string `json:"role" form:"role"`
}
