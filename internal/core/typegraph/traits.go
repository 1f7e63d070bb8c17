package typegraph

// Traits holds per-class overridable behavior. Each field replaces the
// built-in default when non-nil. Traits are evaluated without a live actor,
// so they must depend only on the class itself, never on instance state.
type Traits struct {
	// FinalParent overrides the terminal-singleton predicate.
	// Default: true for any non-abstract class.
	FinalParent func() bool

	// NoticeTitle and NoticeBody override the user-facing message shown
	// when a duplicate is removed in an interactive context. Unlike
	// FinalParent these are inherited down the class chain.
	NoticeTitle func() string
	NoticeBody  func() string
}

const (
	defaultNoticeTitle = "Singleton - Removed Duplicate"
	defaultNoticeBody  = "A duplicate instance was found and has been removed.\n" +
		"There is already one instance in the current world.\n" +
		"(check the log for a detailed error)"
)

// IsFinalParent reports whether this class is a terminal singleton boundary:
// every subclass funnels into this class's registry bucket. Defaults to
// "not abstract", matching the common case where concrete classes own their
// own bucket and abstract bases opt in explicitly.
func (c *Class) IsFinalParent() bool {
	if c.traits.FinalParent != nil {
		return c.traits.FinalParent()
	}
	return !c.abstract
}

// NoticeTitle returns the duplicate-removal notice header for this class.
// Overrides are inherited from the nearest ancestor that declares one.
func (c *Class) NoticeTitle() string {
	for it := c; it != nil; it = it.parent {
		if it.traits.NoticeTitle != nil {
			return it.traits.NoticeTitle()
		}
	}
	return defaultNoticeTitle
}

// NoticeBody returns the duplicate-removal notice body for this class.
func (c *Class) NoticeBody() string {
	for it := c; it != nil; it = it.parent {
		if it.traits.NoticeBody != nil {
			return it.traits.NoticeBody()
		}
	}
	return defaultNoticeBody
}

// SetTraits replaces the class's trait overrides. Intended for startup-time
// wiring only (e.g. script-driven overrides); traits must not change once
// worlds are live.
func (c *Class) SetTraits(t Traits) { c.traits = t }
