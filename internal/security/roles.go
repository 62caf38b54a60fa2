package security

// Role is the closed set of caller variants.
type Role string

// Caller roles.
const (
	// RoleSeller owns a storefront and manages its settings.
	RoleSeller Role = "seller"
	// RoleAdmin operates the marketplace and may override any store.
	RoleAdmin Role = "admin"
	// RoleCustomer places orders.
	RoleCustomer Role = "customer"
)

// Capability names an action a caller may perform.
type Capability string

// Capabilities checked by the HTTP layer.
const (
	// CapManageOwnStore allows editing the caller's own store settings.
	CapManageOwnStore Capability = "manage_own_store"
	// CapOverrideStore allows setting and clearing admin overrides.
	CapOverrideStore Capability = "override_store"
	// CapPlaceOrder allows requesting order admission.
	CapPlaceOrder Capability = "place_order"
)

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	switch r {
	case RoleSeller, RoleAdmin, RoleCustomer:
		return true
	default:
		return false
	}
}

// Can is the single capability predicate for all role checks.
func (r Role) Can(capability Capability) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleSeller:
		return capability == CapManageOwnStore || capability == CapPlaceOrder
	case RoleCustomer:
		return capability == CapPlaceOrder
	default:
		return false
	}
}
