package domain

// DiscoveryMethod identifies which signal located a structured endpoint.
type DiscoveryMethod string

// Discovery signals, in priority order.
const (
	// DiscoveryHeader is the HTTP Link response header signal.
	DiscoveryHeader DiscoveryMethod = "header"

	// DiscoveryTag is the HTML <link rel="alternate"> tag signal.
	DiscoveryTag DiscoveryMethod = "tag"

	// DiscoveryRobots is the robots.txt AIO-Content directive signal.
	DiscoveryRobots DiscoveryMethod = "robots"

	// DiscoveryDirect is the conventional default-path probe signal.
	DiscoveryDirect DiscoveryMethod = "direct"
)

// IsValid returns true if the discovery method is recognised.
func (m DiscoveryMethod) IsValid() bool {
	switch m {
	case DiscoveryHeader, DiscoveryTag, DiscoveryRobots, DiscoveryDirect:
		return true
	default:
		return false
	}
}

// DiscoveryTarget is a located structured-content endpoint.
// A nil target means discovery exhausted all signals, which is a normal
// outcome, not an error.
type DiscoveryTarget struct {
	// URL is the absolute structured-content URL.
	URL string

	// Method is the signal that produced the target.
	Method DiscoveryMethod
}
