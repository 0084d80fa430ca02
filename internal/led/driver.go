// Package led pushes finished RGB frames to a strip or a stand-in for one.
package led

// Driver is one output sink. Write receives 3 bytes per pixel in strip order.
type Driver interface {
	Write(rgb []byte) error
	Close() error
}
