package component

// AttackCooldown counts down in seconds. The owner may act when Remaining has
// reached zero; acting resets Remaining to Interval (or a resolver-specific
// value for ranged fire).
type AttackCooldown struct {
	Interval  float64
	Remaining float64
}

func (c *AttackCooldown) Ready() bool {
	return c != nil && c.Remaining <= 0
}

var AttackCooldownComponent = NewComponent[AttackCooldown]()
