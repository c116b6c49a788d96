package auth

import "github.com/frahmantamala/attendance-management/internal/directory"

// Capability names a privileged operation. Role checks go through this
// table instead of comparing role strings at call sites.
type Capability string

const (
	CapViewAllAttendance Capability = "attendance:view_all"
	CapEditAttendance    Capability = "attendance:edit"
	CapDeleteAttendance  Capability = "attendance:delete"
	CapDecideLeave       Capability = "leave:decide"
)

// LedgerScope describes how much of a ledger a role may see.
type LedgerScope int

const (
	ScopeSelf LedgerScope = iota
	ScopeTeam
	ScopeDepartment
	ScopeAll
)

var rolePolicy = map[string]map[Capability]bool{
	directory.RoleStaff: {},
	directory.RoleTeamLead: {
		CapDecideLeave: true,
	},
	directory.RoleManager: {
		CapViewAllAttendance: true,
		CapDecideLeave:       true,
	},
	directory.RoleHR: {
		CapDecideLeave: true,
	},
	directory.RoleAdmin: {
		CapViewAllAttendance: true,
		CapEditAttendance:    true,
		CapDeleteAttendance:  true,
		CapDecideLeave:       true,
	},
}

// Can reports whether the role holds the capability. Unknown roles hold
// nothing.
func Can(role string, cap Capability) bool {
	caps, ok := rolePolicy[role]
	if !ok {
		return false
	}
	return caps[cap]
}

// AttendanceScope: admins and managers see the full ledger, everyone else
// their own records.
func AttendanceScope(role string) LedgerScope {
	if Can(role, CapViewAllAttendance) {
		return ScopeAll
	}
	return ScopeSelf
}

// LeaveScope: admins and HR see everything, managers their department,
// team leads their direct reports, everyone else themselves.
func LeaveScope(role string) LedgerScope {
	switch role {
	case directory.RoleAdmin, directory.RoleHR:
		return ScopeAll
	case directory.RoleManager:
		return ScopeDepartment
	case directory.RoleTeamLead:
		return ScopeTeam
	default:
		return ScopeSelf
	}
}
