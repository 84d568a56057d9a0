package domain

import "time"

// PartyRole is the closed set of roles a party can hold.
type PartyRole string

const (
	RoleAdmin      PartyRole = "ADMIN"
	RoleManager    PartyRole = "MANAGER"
	RoleAccountant PartyRole = "ACCOUNTANT"
	RoleCashier    PartyRole = "CASHIER"
	RoleClerk      PartyRole = "CLERK"
	RoleCustomer   PartyRole = "CUSTOMER"
)

// PartyStatus is the lifecycle status of a party. Only Active parties may drive
// capability-gated mutations.
type PartyStatus string

const (
	StatusActive     PartyStatus = "ACTIVE"
	StatusOnLeave    PartyStatus = "ON_LEAVE"
	StatusSuspended  PartyStatus = "SUSPENDED"
	StatusTerminated PartyStatus = "TERMINATED"
)

// Capability is a named permission a role may grant.
type Capability string

const (
	CapManageParties   Capability = "MANAGE_PARTIES"
	CapManageLedger    Capability = "MANAGE_LEDGER"
	CapProcessPayments Capability = "PROCESS_PAYMENTS"
	CapViewReports     Capability = "VIEW_REPORTS"
	CapIssuePoints     Capability = "ISSUE_POINTS"
	CapProcessPayroll  Capability = "PROCESS_PAYROLL"
)

// roleCapabilities is the static role to capability table. It is constructed once
// and treated as immutable configuration; access goes through RoleHasCapability.
var roleCapabilities = map[PartyRole][]Capability{
	RoleAdmin: {
		CapManageParties,
		CapManageLedger,
		CapProcessPayments,
		CapViewReports,
		CapIssuePoints,
		CapProcessPayroll,
	},
	RoleManager: {
		CapManageParties,
		CapProcessPayments,
		CapViewReports,
		CapIssuePoints,
	},
	RoleAccountant: {
		CapViewReports,
		CapProcessPayroll,
	},
	RoleCashier: {
		CapProcessPayments,
		CapIssuePoints,
	},
	RoleClerk:    {},
	RoleCustomer: {},
}

// RoleHasCapability reports whether the role's static grant includes the capability.
func RoleHasCapability(role PartyRole, cap Capability) bool {
	for _, granted := range roleCapabilities[role] {
		if granted == cap {
			return true
		}
	}
	return false
}

// CapabilitiesFor returns a copy of the capability set granted to the role.
func CapabilitiesFor(role PartyRole) []Capability {
	granted := roleCapabilities[role]
	out := make([]Capability, len(granted))
	copy(out, granted)
	return out
}

// Party is an identity known to the ledger: an employee, a customer, or the
// administrator. Its PartyID doubles as its ledger account identifier.
type Party struct {
	PartyID       string      `json:"partyID"` // Primary key (UUID), also the ledger account id
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Role          PartyRole   `json:"role"`
	Status        PartyStatus `json:"status"`
	Tier          Tier        `json:"tier"`          // Cached classification, never lowered
	LoyaltyPoints int64       `json:"loyaltyPoints"` // 1 point per 10,000 spent
	PasswordHash  string      `json:"-"`
	JoinedAt      time.Time   `json:"joinedAt"`
	AuditFields
}

// IsActive reports whether the party may act as a principal.
func (p Party) IsActive() bool {
	return p.Status == StatusActive
}

// PartyPatch is an explicit field-by-field update: a nil field means leave
// unchanged, a set field means overwrite. A patch either applies entirely or
// not at all.
type PartyPatch struct {
	Name   *string      `json:"name,omitempty"`
	Email  *string      `json:"email,omitempty"`
	Phone  *string      `json:"phone,omitempty"`
	Role   *PartyRole   `json:"role,omitempty"`
	Status *PartyStatus `json:"status,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p PartyPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Role == nil && p.Status == nil
}

// Apply overwrites the set fields on the party.
func (p PartyPatch) Apply(party *Party) {
	if p.Name != nil {
		party.Name = *p.Name
	}
	if p.Email != nil {
		party.Email = *p.Email
	}
	if p.Phone != nil {
		party.Phone = *p.Phone
	}
	if p.Role != nil {
		party.Role = *p.Role
	}
	if p.Status != nil {
		party.Status = *p.Status
	}
}
