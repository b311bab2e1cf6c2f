// Package wellknown is a handler pack for common Go value types whose
// structure says little about their interesting values: uuid.UUID,
// time.Time and time.Duration.
package wellknown

import (
	"math"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/teranos/inhabit/registry"
	"github.com/teranos/inhabit/typex"
)

// Name of the pack.
const Name = "wellknown"

// Pack returns the pack for installation into a registry.
func Pack() registry.Pack {
	return registry.Pack{
		Name:        Name,
		Version:     "1.0.0",
		Description: "uuid.UUID, time.Time and time.Duration",
		Requires:    ">= 1.0.0, < 2.0.0",
		Install:     install,
	}
}

var (
	UUID     = reflect.TypeFor[uuid.UUID]()
	Time     = reflect.TypeFor[time.Time]()
	Duration = reflect.TypeFor[time.Duration]()
)

// Scope binds the qualified names of the pack's types for typex.Parse.
func Scope() typex.Scope {
	return typex.Scope{
		"uuid.UUID":     UUID,
		"time.Time":     Time,
		"time.Duration": Duration,
	}
}

func install(r *registry.Registry) error {
	if err := r.Register(registry.Static(UUIDs()...), UUID); err != nil {
		return err
	}
	if err := r.Register(registry.Static(Times()...), Time); err != nil {
		return err
	}
	return r.Register(registry.Static(Durations()...), Duration)
}

// UUIDs returns the representative UUIDs: nil, max, the RFC 4122 DNS
// namespace, and a fixed name-based v5 value.
func UUIDs() []any {
	return []any{
		uuid.Nil,
		uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff"),
		uuid.NameSpaceDNS,
		uuid.NewSHA1(uuid.NameSpaceURL, []byte("inhabit")),
	}
}

// Times returns the representative instants.
func Times() []any {
	return []any{
		time.Time{},
		time.Unix(0, 0).UTC(),
		time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2038, time.January, 19, 3, 14, 7, 0, time.UTC),
		time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC),
		time.Date(2024, time.June, 1, 12, 0, 0, 0, time.FixedZone("UTC+14", 14*60*60)),
	}
}

// Durations returns the representative durations.
func Durations() []any {
	return []any{
		time.Duration(0),
		time.Nanosecond,
		-time.Nanosecond,
		time.Second,
		-time.Second,
		24 * time.Hour,
		time.Duration(math.MaxInt64),
		time.Duration(math.MinInt64),
	}
}
