package auth

// Decision is the outcome of evaluating a request against the route table.
// A zero Decision allows the request.
type Decision struct {
	// Location is the redirect target; empty means allow.
	Location string
	// Class is the classification that produced the decision.
	Class RouteClass
}

// Allowed reports whether the request may proceed unmodified.
func (d Decision) Allowed() bool { return d.Location == "" }

// Decide evaluates a request path given token presence and the cookie identity snapshot.
// snapshot is nil when the role is unknown (cookie absent or unreadable). The result is a
// pure function of (classification, token presence, snapshot role).
func Decide(t RouteTable, path string, hasToken bool, snapshot *Identity) Decision {
	class := t.Classify(path)
	switch class {
	case RouteAdmin:
		if !hasToken {
			return Decision{Location: LoginPath, Class: class}
		}
		if snapshot != nil && !snapshot.IsPrivileged() {
			return Decision{Location: UnauthorizedLoginPath, Class: class}
		}
	case RouteProtected:
		if !hasToken {
			return Decision{Location: LoginPath, Class: class}
		}
	case RoutePublic:
		if hasToken {
			if snapshot.IsPrivileged() {
				return Decision{Location: AdminLandingPath, Class: class}
			}
			return Decision{Location: UserLandingPath, Class: class}
		}
	case RouteUnclassified:
	}
	return Decision{Class: class}
}

// LandingPath returns where an authenticated identity should land after login.
func LandingPath(id *Identity) string {
	if id.IsPrivileged() {
		return AdminLandingPath
	}
	return UserLandingPath
}
