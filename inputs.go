package framy

import (
	"io"
	"strings"
)

// ResolveInputs expands the stdin sentinel into the whitespace-separated paths read from stdin.
//
// No arguments means the sentinel alone. Stdin is read at most once, a repeated
// sentinel contributes nothing further. Paths read from stdin are taken
// literally except for the sentinel itself, which is rejected.
func ResolveInputs(args []string, stdin io.Reader) ([]string, error) {
	if len(args) == 0 {
		args = []string{StdinSentinel}
	}

	var (
		paths    []string
		consumed bool
	)

	for _, a := range args {
		if a != StdinSentinel {
			paths = append(paths, a)
			continue
		}
		if consumed {
			continue
		}
		consumed = true

		if stdin == nil {
			return nil, wrapErr(ErrInvalidConfiguration, "standard input is not available")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, wrapErr(ErrDecode, "read standard input: %v", err)
		}
		for _, p := range strings.Fields(string(data)) {
			if p == StdinSentinel {
				return nil, wrapErr(ErrInvalidConfiguration, "standard input lists %q as a path", StdinSentinel)
			}
			paths = append(paths, p)
		}
	}

	return paths, nil
}
