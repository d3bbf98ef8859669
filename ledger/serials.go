package ledger

// MaxSerialLen bounds the length of a caller-chosen serial number in bytes.
const MaxSerialLen = 64

// serialSet is an append-only registry of consumed single-use serial numbers.
// Marks are permanent: there is no way to release a serial.
type serialSet struct {
	used map[string]struct{}
}

func newSerialSet() *serialSet {
	return &serialSet{used: make(map[string]struct{})}
}

func (s *serialSet) contains(serial string) bool {
	_, ok := s.used[serial]
	return ok
}

func (s *serialSet) mark(serial string) {
	s.used[serial] = struct{}{}
}

// unmark removes a serial. It exists solely so a failed settlement can roll
// back the mark it made earlier in the same call; it is never reachable from
// the public surface.
func (s *serialSet) unmark(serial string) {
	delete(s.used, serial)
}

// checkSerial validates the shape of a serial number and its unusedness in
// both flows. The two sets share one namespace for replay purposes: a serial
// consumed by either flow is unusable in both.
func checkSerial(serial string, payments, withdrawals *serialSet) error {
	if serial == "" {
		return newError(KindPrecond, CodeSerialNoEmpty, "serial number is empty")
	}
	if len(serial) > MaxSerialLen {
		return newError(KindPrecond, CodeSerialNoTooLong, "serial number exceeds 64 bytes")
	}
	if payments.contains(serial) || withdrawals.contains(serial) {
		return newError(KindPrecond, CodeSerialNoUsed, "serial number already used")
	}
	return nil
}
