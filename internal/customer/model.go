package customer

import "time"

type Membership string

const (
	MembershipBronze Membership = "B"
	MembershipSilver Membership = "S"
	MembershipGold   Membership = "G"
)

func (m Membership) Valid() bool {
	switch m {
	case MembershipBronze, MembershipSilver, MembershipGold:
		return true
	}
	return false
}

type Customer struct {
	ID         uint       `json:"id"`
	UserID     uint       `json:"user_id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	BirthDate  *time.Time `json:"birth_date"`
	Membership Membership `json:"membership"`
}

type UpdateInput struct {
	FirstName *string    `json:"first_name" validate:"omitempty,max=255"`
	LastName  *string    `json:"last_name" validate:"omitempty,max=255"`
	Phone     *string    `json:"phone" validate:"omitempty,max=255"`
	BirthDate *time.Time `json:"birth_date"`
}

type ListParams struct {
	Page  int
	Limit int
}

const DefaultPageSize = 10
