package domain

// Requester is the authenticated identity extracted from a bearer token.
type Requester struct {
	ID   string
	Role string
}

// CanModify decides whether a requester may update or delete the account
// identified by targetID: admins may modify anyone, everyone else only
// themselves. Pure decision, no side effects.
func CanModify(requester Requester, targetID string) bool {
	return requester.Role == RoleAdmin || requester.ID == targetID
}
