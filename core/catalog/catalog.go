// Package catalog holds the RDS instance family tables: size ladders,
// family categories and the lookups the estimator needs to expand one
// instance type into its comparison candidates.
package catalog

import (
	"fmt"
	"regexp"
)

// Size describes one rung of a size ladder.
type Size struct {
	VCPU        int
	MemoryGB    float64
	NetworkGbps float64
}

// Category groups families with comparable workload profiles.
type Category string

const (
	CategoryMemoryOptimized Category = "memory-optimized"
	CategoryGeneralPurpose  Category = "general-purpose"
	CategoryBurstable       Category = "burstable"
	CategoryUnknown         Category = "unknown"
)

var instancePattern = regexp.MustCompile(`^db\.([a-z0-9]+)\.(.+)$`)

// ladder is an ordered size table; order is ascending by memory.
type ladder struct {
	names []string
	specs map[string]Size
}

// RDS offers the r family from large upward only.
var memoryLadder = ladder{
	names: []string{"large", "xlarge", "2xlarge", "4xlarge", "8xlarge", "12xlarge", "16xlarge", "24xlarge"},
	specs: map[string]Size{
		"large":    {VCPU: 2, MemoryGB: 16, NetworkGbps: 12.5},
		"xlarge":   {VCPU: 4, MemoryGB: 32, NetworkGbps: 12.5},
		"2xlarge":  {VCPU: 8, MemoryGB: 64, NetworkGbps: 12.5},
		"4xlarge":  {VCPU: 16, MemoryGB: 128, NetworkGbps: 12.5},
		"8xlarge":  {VCPU: 32, MemoryGB: 256, NetworkGbps: 12.5},
		"12xlarge": {VCPU: 48, MemoryGB: 384, NetworkGbps: 18.75},
		"16xlarge": {VCPU: 64, MemoryGB: 512, NetworkGbps: 25.0},
		"24xlarge": {VCPU: 96, MemoryGB: 768, NetworkGbps: 37.5},
	},
}

// General-purpose families carry half the memory of the r ladder.
var generalLadder = ladder{
	names: []string{"large", "xlarge", "2xlarge", "4xlarge", "8xlarge", "12xlarge", "16xlarge", "24xlarge"},
	specs: map[string]Size{
		"large":    {VCPU: 2, MemoryGB: 8, NetworkGbps: 12.5},
		"xlarge":   {VCPU: 4, MemoryGB: 16, NetworkGbps: 12.5},
		"2xlarge":  {VCPU: 8, MemoryGB: 32, NetworkGbps: 12.5},
		"4xlarge":  {VCPU: 16, MemoryGB: 64, NetworkGbps: 12.5},
		"8xlarge":  {VCPU: 32, MemoryGB: 128, NetworkGbps: 12.5},
		"12xlarge": {VCPU: 48, MemoryGB: 192, NetworkGbps: 18.75},
		"16xlarge": {VCPU: 64, MemoryGB: 256, NetworkGbps: 25.0},
		"24xlarge": {VCPU: 96, MemoryGB: 384, NetworkGbps: 37.5},
	},
}

var burstableLadder = ladder{
	names: []string{"micro", "small", "medium", "large", "xlarge", "2xlarge"},
	specs: map[string]Size{
		"micro":   {VCPU: 2, MemoryGB: 1, NetworkGbps: 0.5},
		"small":   {VCPU: 2, MemoryGB: 2, NetworkGbps: 0.5},
		"medium":  {VCPU: 2, MemoryGB: 4, NetworkGbps: 0.5},
		"large":   {VCPU: 2, MemoryGB: 8, NetworkGbps: 0.5},
		"xlarge":  {VCPU: 4, MemoryGB: 16, NetworkGbps: 0.5},
		"2xlarge": {VCPU: 8, MemoryGB: 32, NetworkGbps: 0.5},
	},
}

// Family lists are ordered: generation ascending, Intel before Graviton.
// Pair resolution depends on this order being stable.
var (
	memoryFamilies  = []string{"r6i", "r6g", "r7i", "r7g", "r8g", "x2idn"}
	generalFamilies = []string{"m6i", "m6g", "m7i", "m7g"}
	burstFamilies   = []string{"t3", "t4g"}
)

var gravitonFamilies = map[string]bool{
	"r6g": true, "r7g": true, "r8g": true,
	"m6g": true, "m7g": true, "t4g": true,
}

var familyCategory = func() map[string]Category {
	m := make(map[string]Category)
	for _, f := range memoryFamilies {
		m[f] = CategoryMemoryOptimized
	}
	for _, f := range generalFamilies {
		m[f] = CategoryGeneralPurpose
	}
	for _, f := range burstFamilies {
		m[f] = CategoryBurstable
	}
	return m
}()

// Parse splits an instance type into family and size.
func Parse(instanceType string) (family, size string, ok bool) {
	m := instancePattern.FindStringSubmatch(instanceType)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// FamilyCategory returns the category a family belongs to.
func FamilyCategory(family string) Category {
	if c, ok := familyCategory[family]; ok {
		return c
	}
	return CategoryUnknown
}

// IsGraviton reports whether the family runs on Graviton processors.
func IsGraviton(family string) bool {
	return gravitonFamilies[family]
}

func ladderFor(family string) ladder {
	switch FamilyCategory(family) {
	case CategoryBurstable:
		return burstableLadder
	case CategoryGeneralPurpose:
		return generalLadder
	default:
		return memoryLadder
	}
}

// Lookup returns the hardware specs for an instance type.
func Lookup(instanceType string) (Size, bool) {
	family, size, ok := Parse(instanceType)
	if !ok {
		return Size{}, false
	}
	spec, ok := ladderFor(family).specs[size]
	return spec, ok
}

// SameCategoryFamilies returns the families sharing a category with family,
// in catalog order. Unknown families get only themselves.
func SameCategoryFamilies(family string) []string {
	switch FamilyCategory(family) {
	case CategoryMemoryOptimized:
		return memoryFamilies
	case CategoryGeneralPurpose:
		return generalFamilies
	case CategoryBurstable:
		return burstFamilies
	}
	return []string{family}
}

// ExpandFamilies generates the same-size variants of instanceType across its
// category, preserving catalog order. Graviton variants are dropped when
// excludeGraviton is set (licensed engines do not run on Graviton).
func ExpandFamilies(instanceType string, excludeGraviton bool) []string {
	family, size, ok := Parse(instanceType)
	if !ok {
		return []string{instanceType}
	}

	variants := make([]string, 0, 6)
	seen := make(map[string]bool)
	for _, fam := range SameCategoryFamilies(family) {
		if excludeGraviton && IsGraviton(fam) {
			continue
		}
		v := fmt.Sprintf("db.%s.%s", fam, size)
		if !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}
	return variants
}

// SmallestFitting returns the smallest instance in family whose memory is at
// least memoryGB, or the largest rung when nothing fits. Returns "" for an
// unparseable family with an empty ladder.
func SmallestFitting(family string, memoryGB float64) string {
	l := ladderFor(family)
	for _, size := range l.names {
		if l.specs[size].MemoryGB >= memoryGB {
			return fmt.Sprintf("db.%s.%s", family, size)
		}
	}
	if len(l.names) > 0 {
		return fmt.Sprintf("db.%s.%s", family, l.names[len(l.names)-1])
	}
	return ""
}
