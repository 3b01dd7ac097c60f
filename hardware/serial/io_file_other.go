//go:build !linux
// +build !linux

package serial

import "github.com/juju/errors"

type fileUart struct{}

func NewFileUart() *fileUart { return &fileUart{} }

func (self *fileUart) Open(path string, baud int) error {
	return errors.NotSupportedf("file uart on this platform")
}
func (self *fileUart) Write(p []byte) (int, error) { return 0, ErrNotOpen }
func (self *fileUart) Drain() error                { return ErrNotOpen }
func (self *fileUart) Close() error                { return nil }
