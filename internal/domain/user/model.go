package user

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Membership relates a user to one pool.
type Membership struct {
	PoolID int64
	Role   Role
}

type User struct {
	ID          int64
	FirstName   string
	LastName    string
	Email       string
	Memberships []Membership
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID int64
	Email  string
}

func (u User) MemberOf(poolID int64) bool {
	for _, m := range u.Memberships {
		if m.PoolID == poolID {
			return true
		}
	}
	return false
}
