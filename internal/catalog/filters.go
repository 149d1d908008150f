package catalog

import "strings"

// Filter selects boosters.
type Filter func(b *Booster) bool

// And returns a filter matching boosters accepted by f and every other filter.
func (f Filter) And(others ...Filter) Filter {
	return And(append([]Filter{f}, others...)...)
}

// All matches every booster.
func All() Filter {
	return func(*Booster) bool { return true }
}

// And composes filters with logical AND. Nil filters are ignored.
func And(filters ...Filter) Filter {
	return func(b *Booster) bool {
		for _, f := range filters {
			if f != nil && !f(b) {
				return false
			}
		}
		return true
	}
}

// Missions matches boosters for the given mission.
func Missions(m Mission) Filter {
	return func(b *Booster) bool { return b.Mission.Equal(m) }
}

// Runtimes matches boosters for the given runtime.
func Runtimes(r Runtime) Filter {
	return func(b *Booster) bool { return b.Runtime.Equal(r) }
}

// RunsOn matches boosters that can be deployed to a cluster of the given type.
//
// The runsOn metadata accepts these values:
//
//	(empty)   every cluster type
//	all, *    every cluster type
//	none      no cluster type
//	!<type>   every cluster type except <type>
//	<type>    only the listed types
//
// A list made only of exclusions matches every type it does not exclude.
func RunsOn(clusterType string) Filter {
	return func(b *Booster) bool {
		return isSupported(b.RunsOn(), clusterType)
	}
}

func isSupported(supported []string, clusterType string) bool {
	if len(supported) == 0 || clusterType == "" {
		return true
	}

	clusterType = strings.ToLower(clusterType)
	matched := false
	onlyExclusions := true
	for _, entry := range supported {
		entry = strings.ToLower(strings.TrimSpace(entry))
		switch {
		case entry == "none":
			return false
		case strings.HasPrefix(entry, "!"):
			if strings.TrimPrefix(entry, "!") == clusterType {
				return false
			}
		case entry == "all" || entry == "*" || entry == clusterType:
			onlyExclusions = false
			matched = true
		default:
			onlyExclusions = false
		}
	}
	return matched || onlyExclusions
}
