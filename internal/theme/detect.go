package theme

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

// DetectBackground asks the controlling terminal for its background
// color with an OSC 11 query and maps the answer to a theme name. The
// read is bounded by timeout; callers fall back to the dark default
// on error.
func DetectBackground(timeout time.Duration) (string, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return "", fmt.Errorf("open tty: %w", err)
	}
	defer tty.Close() //nolint:errcheck

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("not a terminal")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, oldState) //nolint:errcheck

	if err := tty.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return "", fmt.Errorf("read deadline: %w", err)
	}
	if _, err := tty.WriteString("\x1b]11;?\x07"); err != nil {
		return "", fmt.Errorf("query: %w", err)
	}

	var response []byte
	buf := make([]byte, 64)
	for !oscTerminated(response) {
		n, err := tty.Read(buf)
		if err != nil {
			return "", fmt.Errorf("response: %w", err)
		}
		response = append(response, buf[:n]...)
	}

	name, ok := classifyResponse(string(response))
	if !ok {
		return "", fmt.Errorf("unrecognized response %q", response)
	}
	return name, nil
}

// oscTerminated reports whether buf holds a complete OSC reply, ended
// by either BEL or ST.
func oscTerminated(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	return bytes.IndexByte(buf, 0x07) >= 0 || bytes.Contains(buf, []byte{0x1b, '\\'})
}

// classifyResponse parses an OSC 11 reply such as
// "\x1b]11;rgb:1e1e/1e1e/2e2e\x07" and picks the theme for its
// luminance.
func classifyResponse(resp string) (string, bool) {
	idx := strings.Index(resp, "rgb:")
	if idx < 0 {
		return "", false
	}
	spec := resp[idx+len("rgb:"):]
	spec = strings.TrimRight(spec, "\x07")
	spec = strings.TrimSuffix(spec, "\x1b\\")

	parts := strings.Split(spec, "/")
	if len(parts) != 3 {
		return "", false
	}

	var channels [3]float64
	for i, part := range parts {
		v, err := strconv.ParseUint(part, 16, 32)
		if err != nil {
			return "", false
		}
		// Channels scale by their own width: "f" and "ffff" both mean
		// full intensity.
		maxVal := uint64(1)<<(4*len(part)) - 1
		channels[i] = float64(v) / float64(maxVal)
	}

	luminance := 0.2126*channels[0] + 0.7152*channels[1] + 0.0722*channels[2]
	if luminance > 0.5 {
		return LightName, true
	}
	return DarkName, true
}
