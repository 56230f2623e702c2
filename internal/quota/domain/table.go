package domain

import (
	"github.com/vendahub/salesops/internal/config"
	memberdomain "github.com/vendahub/salesops/internal/member/domain"
)

type tableKey struct {
	role  memberdomain.Role
	level memberdomain.Level
}

// Table is an immutable (role, level) → weekly target lookup, built once per
// aggregation run and passed explicitly. Stored rows win; the configured
// defaults back any missing pair so a gap in weekly_quotas never silently
// zeroes a quota.
type Table struct {
	targets  map[tableKey]int
	defaults map[tableKey]int
}

func BuildTable(rows []WeeklyQuota, defaults []config.QuotaDefault) Table {
	t := Table{
		targets:  make(map[tableKey]int, len(rows)),
		defaults: make(map[tableKey]int, len(defaults)),
	}
	for _, row := range rows {
		t.targets[tableKey{role: row.Role, level: row.Level}] = row.Target
	}
	for _, def := range defaults {
		t.defaults[tableKey{role: memberdomain.Role(def.Role), level: memberdomain.Level(def.Level)}] = def.Target
	}
	return t
}

// Lookup returns the weekly target for the pair, falling back to the
// configured default when no stored row exists. Zero means no quota is
// defined at all.
func (t Table) Lookup(role memberdomain.Role, level memberdomain.Level) int {
	key := tableKey{role: role, level: level}
	if target, ok := t.targets[key]; ok {
		return target
	}
	return t.defaults[key]
}
