// Package utils provides utility functions.
package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm writes msg to w and reads a y/n answer from r. Returns true for
// yes; anything else, including EOF, is a no.
func Confirm(r io.Reader, w io.Writer, msg string) bool {
	fmt.Fprint(w, msg)
	line, _ := bufio.NewReader(r).ReadString('\n')
	resp := strings.TrimSpace(strings.ToLower(line))
	return resp == "y" || resp == "yes"
}
