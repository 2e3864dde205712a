// Package broker implements request-reply messaging over Redis lists.
//
// A client pushes a request envelope onto a service's queue and blocks
// on a per-request reply list keyed by correlation id. Any number of
// server workers pop from the shared queue (competing consumers), so a
// message is handled by exactly one instance and delivery is
// at-least-once.
package broker

// Pattern identifies one logical remote operation. Pattern names are
// part of the inter-service contract.
type Pattern string

const (
	PatternUserSignup  Pattern = "user.signup"
	PatternUserLogin   Pattern = "user.login"
	PatternUserMe      Pattern = "user.me"
	PatternUserLogout  Pattern = "user.logout"
	PatternUserRefresh Pattern = "user.refresh"
)

// AuthQueue is the queue the auth service consumes.
const AuthQueue = "auth_queue"

// AuthPatterns lists every pattern the auth service must serve. Startup
// code uses it to verify that each declared pattern has a handler.
func AuthPatterns() []Pattern {
	return []Pattern{
		PatternUserSignup,
		PatternUserLogin,
		PatternUserMe,
		PatternUserLogout,
		PatternUserRefresh,
	}
}
