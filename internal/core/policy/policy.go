// Package policy holds the pure access decisions for clients and reports.
// Callers fetch the entities; nothing here touches I/O, so every decision is
// re-derived from current state on every call. In particular, specialist
// access follows the client's current assignment, never a cached one.
package policy

import "github.com/jugendhilfe/casework-system/internal/core/domain"

// CanAccessClient reports whether the specialist is the client's currently
// assigned specialist. A nil client (not found) is a plain denial; callers
// that need to distinguish not-found from forbidden do their own existence
// check.
func CanAccessClient(specialistID string, client *domain.Client) bool {
	if client == nil || specialistID == "" {
		return false
	}
	return client.AssignedSpecialist == specialistID
}

// IsAuthorOrAdmin reports whether the actor may touch the report at all:
// the original author or any Verwaltung account, regardless of the client's
// current assignment.
func IsAuthorOrAdmin(actor domain.Actor, report *domain.Report) bool {
	if report == nil {
		return false
	}
	return actor.Role == domain.RoleVerwaltung || actor.ID == report.AuthorID
}

// CanModifyReport reports whether the actor may update or delete the report.
// A locked report rejects mutation from everyone, admins included.
func CanModifyReport(actor domain.Actor, report *domain.Report) bool {
	if report == nil || report.IsLocked {
		return false
	}
	return IsAuthorOrAdmin(actor, report)
}

// CanViewClientReports reports whether the actor may list the client's
// reports: Verwaltung always, a Fachkraft only while assigned.
func CanViewClientReports(actor domain.Actor, client *domain.Client) bool {
	if actor.Role == domain.RoleVerwaltung {
		return true
	}
	return CanAccessClient(actor.ID, client)
}
