package cache

// SetRename replaces the final rename step of atomic writes.
func (s *Store) SetRename(fn func(oldpath, newpath string) error) {
	s.rename = fn
}
