// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// =============================================================================
// DEPARTMENT TYPE
// =============================================================================

// DepartmentID identifies one of the fixed organizational departments.
type DepartmentID string

const (
	DeptEngineering DepartmentID = "engineering"
	DeptDelivery    DepartmentID = "delivery"
	DeptAdmin       DepartmentID = "admin"
	DeptSales       DepartmentID = "sales"
	DeptCLevel      DepartmentID = "clevel"
	DeptMarketing   DepartmentID = "marketing"
)

// String returns the string representation of the department id.
func (d DepartmentID) String() string {
	return string(d)
}

// DepartmentMeta holds the display metadata for a department. The id set is
// fixed client-side; the server may override name and description.
type DepartmentMeta struct {
	ID          DepartmentID `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
}

// departmentOrder fixes the display order of the default set.
var departmentOrder = []DepartmentID{
	DeptEngineering,
	DeptDelivery,
	DeptAdmin,
	DeptSales,
	DeptCLevel,
	DeptMarketing,
}

// departmentNames maps ids to their canonical display names.
var departmentNames = map[DepartmentID]string{
	DeptEngineering: "Engineering",
	DeptDelivery:    "Delivery",
	DeptAdmin:       "Admin",
	DeptSales:       "Sales",
	DeptCLevel:      "C-Level",
	DeptMarketing:   "Marketing",
}

// DefaultDepartments returns the built-in department set with empty
// descriptions, in display order.
func DefaultDepartments() []DepartmentMeta {
	metas := make([]DepartmentMeta, 0, len(departmentOrder))
	for _, id := range departmentOrder {
		metas = append(metas, DepartmentMeta{ID: id, Name: departmentNames[id]})
	}
	return metas
}

// DepartmentName returns the canonical display name for an id.
func DepartmentName(id DepartmentID) string {
	return departmentNames[id]
}

// DepartmentIDFromName maps a server-reported department name onto a known
// id. Matching is case-insensitive and ignores anything that is not a
// letter, so "C-Level" and "clevel" both resolve. Unknown names return
// ("", false) and the caller is expected to discard the entry.
func DepartmentIDFromName(name string) (DepartmentID, bool) {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}

	switch b.String() {
	case "engineering":
		return DeptEngineering, true
	case "delivery":
		return DeptDelivery, true
	case "admin":
		return DeptAdmin, true
	case "sales":
		return DeptSales, true
	case "clevel":
		return DeptCLevel, true
	case "marketing":
		return DeptMarketing, true
	default:
		return "", false
	}
}
