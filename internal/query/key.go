package query

import "strings"

// Key identifies one cached query by ordered segments, e.g. Key{"job", id}.
type Key []string

func (k Key) String() string { return strings.Join(k, ":") }

// HasPrefix reports whether every segment of prefix matches the head of k.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

var (
	KeyJobs          = Key{"jobs"}
	KeyMyJobs        = Key{"my-jobs"}
	KeyRecJobs       = Key{"rec-jobs"}
	KeyApplicantJobs = Key{"applicant-jobs"}
	KeyUsers         = Key{"users"}
	KeyAdminStats    = Key{"admin-stats"}
)

func JobKey(id string) Key { return Key{"job", id} }

// ParseKey reverses Key.String.
func ParseKey(raw string) Key {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return Key(strings.Split(raw, ":"))
}
