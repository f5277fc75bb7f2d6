package domain

// Principal is the authenticated caller, as resolved from a bearer token.
// It is carried through the request context; no global session state exists.
type Principal struct {
	UserID    string
	Email     string
	Role      Role
	CompanyID *string
}

// Action is what a principal is attempting to do to a resource.
type Action string

const (
	ActionRead    Action = "read"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve" // approve/reject time entries
	ActionManage  Action = "manage"  // role changes, company administration
)

// Resource describes the ownership of the thing being acted on, which is all
// the authorization policy needs to decide.
type Resource struct {
	OwnerUserID  string  // user the resource belongs to ("" when company-scoped)
	CompanyID    *string // company the resource belongs to, when known
	OwnerRole    Role    // role of the owning user, for user-mutation rules
	TargetRole   Role    // role being granted, for role-change requests
	IsRoleChange bool
}

// GoogleUserInfo is the profile returned by Google for a verified sign-in.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
