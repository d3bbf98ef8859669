package ledger

import "github.com/paythefly/PayTheFlyContract-sub001/account"

// MaxAdmins bounds the governance committee size per project.
const MaxAdmins = 20

// adminSet is a bounded, order-preserving set of admin accounts.
//
// It keeps an ordered slice for confirmer enumeration plus a position index
// for O(1) membership and O(1) removal (swap with the last element, then
// truncate). Insertion order is preserved except across removals, which may
// move the last element into the vacated slot.
type adminSet struct {
	list []account.Account
	pos  map[account.Account]int
}

func newAdminSet() *adminSet {
	return &adminSet{pos: make(map[account.Account]int)}
}

func (s *adminSet) len() int {
	return len(s.list)
}

func (s *adminSet) contains(a account.Account) bool {
	_, ok := s.pos[a]
	return ok
}

// add appends a to the set. The caller enforces the MaxAdmins bound and the
// no-duplicates rule; add reports whether the element was new.
func (s *adminSet) add(a account.Account) bool {
	if s.contains(a) {
		return false
	}
	s.pos[a] = len(s.list)
	s.list = append(s.list, a)
	return true
}

// remove deletes a via swap-with-last and reports whether it was present.
func (s *adminSet) remove(a account.Account) bool {
	i, ok := s.pos[a]
	if !ok {
		return false
	}
	last := len(s.list) - 1
	if i != last {
		moved := s.list[last]
		s.list[i] = moved
		s.pos[moved] = i
	}
	s.list = s.list[:last]
	delete(s.pos, a)
	return true
}

// accounts returns a copy of the current membership in iteration order.
func (s *adminSet) accounts() []account.Account {
	out := make([]account.Account, len(s.list))
	copy(out, s.list)
	return out
}
