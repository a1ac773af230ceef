//go:build !windows

package interact

// plainKeys is a no-op outside Windows.
func plainKeys(fd int) error {
	return nil
}
