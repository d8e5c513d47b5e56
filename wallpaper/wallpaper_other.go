//go:build !darwin

package wallpaper

func newSetter() (Setter, error) {
	return nil, ErrUnsupported
}
