package domain

import "time"

type User struct {
	ID        int64
	Username  string
	Email     string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateUserInput struct {
	Username string
	Email    string
	FullName string
}

// UserPatchFields lists, in column order, the user fields a patch may touch.
var UserPatchFields = []string{"username", "email", "full_name"}

type UserPatch struct {
	Username *string
	Email    *string
	FullName *string
}

func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.FullName == nil
}

// UserDeletion reports the outcome of deleting a user, including the tasks
// that were unassigned as part of the same transaction.
type UserDeletion struct {
	Deleted         bool
	AffectedTaskIDs []int64
}
