package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/DeltaThetaBeta/Helldivers2ModManagerEX/pkg/errors"
)

// Confirm asks a yes/no question on out and reads the answer from in.
// Anything but "y" or "yes" declines, including end of input.
func Confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N]: ", prompt); err != nil {
		return false, errors.Wrap(err, errors.ErrIO, "failed to write prompt")
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Wrap(err, errors.ErrIO, "failed to read user input")
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
