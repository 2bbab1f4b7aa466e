package entity

import (
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	BasicEntity
	UserID    *string `json:"user_id" bun:"user_id"`
	FirstName *string `json:"first_name" bun:"first_name"`
	LastName  *string `json:"last_name" bun:"last_name"`
	Email     *string `json:"email" bun:"email"`
	Nip       *string `json:"nip" bun:"nip"`
	Position  *string `json:"position" bun:"position"`
	Password  *string `json:"-" bun:"password"`
	Role      *string `json:"role" bun:"role"`
}
