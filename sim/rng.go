package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible simulation run. Two runs
// built from the same key and catalog must place vehicles identically.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a CLI/config seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

const (
	// SubsystemPlacement is the RNG subsystem for initial vehicle
	// positioning. Uses the master seed directly.
	SubsystemPlacement = "placement"
)

// PartitionedRNG hands out a deterministically-seeded *rand.Rand per named
// subsystem, so unrelated random decisions never perturb each other's
// sequence just because one of them drew an extra number. Not safe for
// concurrent use; the kernel is single-threaded so this never matters.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, subsystems: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the (cached) RNG for the named subsystem.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	var seed int64
	if name == SubsystemPlacement {
		seed = int64(p.key)
	} else {
		seed = int64(p.key) ^ fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(seed))
	p.subsystems[name] = rng
	return rng
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// RandomPlacement returns a placement function that drops every vehicle at
// a uniformly random factory, drawn from rng in vehicle-id order so the
// result is reproducible given the same seed and catalog.
func RandomPlacement(rng *rand.Rand) func(*Catalog) map[VehicleId]FactoryId {
	return func(cat *Catalog) map[VehicleId]FactoryId {
		factories := cat.FactoryIds()
		out := make(map[VehicleId]FactoryId, len(cat.Vehicles))
		for _, v := range cat.VehicleIds() {
			out[v] = factories[rng.Intn(len(factories))]
		}
		return out
	}
}
