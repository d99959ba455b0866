package model

import "tonsor/shared/constant"

const (
	EntityName = "identity"
)

// Identity is the authenticated user as the backend reports it.
type Identity struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	BarberShopID *int64 `json:"barber_shop_id,omitempty"`
}

// IsPrivileged reports whether this identity may inspect booking details and
// book on behalf of walk-in clients. Barbers count as privileged for the
// whole booking surface, not just some screens.
func (i Identity) IsPrivileged() bool {
	switch i.Role {
	case constant.RoleManager, constant.RoleAdmin, constant.RoleBarber:
		return true
	default:
		return false
	}
}
