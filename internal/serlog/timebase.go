package serlog

// Elapsed is session relative time in milliseconds.
type Elapsed uint64

func (e Elapsed) Seconds() uint64    { return uint64(e) / 1000 }
func (e Elapsed) Decisecond() uint64 { return (uint64(e) / 100) % 10 }

type timeBase struct {
	start   uint64
	elapsed Elapsed
}

func (self *timeBase) begin(now uint64) {
	self.start = now
	self.elapsed = 0
}

// update never moves elapsed backwards, even if clock source misbehaves.
func (self *timeBase) update(now uint64) Elapsed {
	if now >= self.start {
		if e := Elapsed(now - self.start); e > self.elapsed {
			self.elapsed = e
		}
	}
	return self.elapsed
}
