// Package relay implements the bidirectional byte pump a session enters
// once its upstream chain is established.
package relay

import (
	"io"
	"net"
)

// bufSize is the per-direction copy buffer. The spec requires only that
// it be at least 512 bytes.
const bufSize = 4096

// Pump copies bytes between left and right in both directions
// concurrently. EOF (or any error) on either half ends the whole session:
// as soon as one direction's copy finishes, both connections are closed to
// unblock the other direction's pending read, and Pump returns. EOF is the
// normal termination outcome and is not returned as an error; any other
// I/O error from the direction that finished first is.
func Pump(left, right net.Conn) error {
	done := make(chan error, 2)
	go copyDirection(done, left, right)
	go copyDirection(done, right, left)

	first := <-done
	left.Close()
	right.Close()
	<-done // wait for the other direction to unblock and exit

	return first
}

// copyDirection copies from src to dst until EOF or error, then sends the
// result on done. io.Copy treats a clean EOF from src as success, so done
// receives nil in that case and the I/O error otherwise.
func copyDirection(done chan<- error, dst, src net.Conn) {
	buf := make([]byte, bufSize)
	_, err := io.CopyBuffer(dst, src, buf)
	done <- err
}
