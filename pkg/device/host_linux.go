//go:build linux

package device

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func hostID() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", fmt.Errorf("%w: uname: %v", ErrNoDeviceID, err)
	}
	host, err := os.Hostname()
	if err != nil || len(host) == 0 {
		host = unix.ByteSliceToString(uts.Nodename[:])
	}
	if len(host) == 0 {
		return "", ErrNoDeviceID
	}
	return host + "/" + unix.ByteSliceToString(uts.Machine[:]), nil
}
