package analog

import "sync/atomic"

// Store keeps the latest value of every input.
// Writers (measurement feed) and the telemetry reader may run in different goroutines.
type Store struct {
	real [AllInputs]uint32
	raw  [PhysicalInputs]uint32
}

func NewStore() *Store { return &Store{} }

// SetReal ignores invalid names.
func (self *Store) SetReal(n Name, v uint32) {
	if n.Valid() {
		atomic.StoreUint32(&self.real[n], v)
	}
}

// SetRaw only accepts physical inputs, calculated ones have no raw reading.
func (self *Store) SetRaw(n Name, v uint32) {
	if n.Physical() {
		atomic.StoreUint32(&self.raw[n], v)
	}
}

func (self *Store) RealValue(n Name) uint32 {
	if !n.Valid() {
		return 0
	}
	return atomic.LoadUint32(&self.real[n])
}

func (self *Store) RawValue(n Name) uint32 {
	if !n.Physical() {
		return 0
	}
	return atomic.LoadUint32(&self.raw[n])
}

// Inputs returns all inputs in iteration order. Shared slice, do not modify.
func (self *Store) Inputs() []Name { return allInputs }

// PhysicalInputs returns physical inputs in iteration order. Shared slice, do not modify.
func (self *Store) PhysicalInputs() []Name { return physicalInputs }
