// Package optimistic implements speculative local updates: mutate the local
// view first, run the authoritative call, and restore the previous value when
// the call fails.
package optimistic

// Apply reads the current value, stores the mutated one, and runs confirm.
// On confirm failure the previous value is restored and the error returned.
// mutate must return a fresh value rather than aliasing the old one.
func Apply[T any](get func() T, set func(T), mutate func(T) T, confirm func() error) error {
	prev := get()
	set(mutate(prev))
	if err := confirm(); err != nil {
		set(prev)
		return err
	}
	return nil
}
