package flagvalue

import (
	"flag"
	"io"
	"os"

	"braces.dev/errtrace"
)

// FileSwitch is a flag that accepts both "-x" and "-x=value".
// Without a value, output goes to a fallback writer.
// With a value, output goes to a file with that name.
type FileSwitch string

var _ flag.Getter = (*FileSwitch)(nil)

// Get returns the path stored in the flag,
// or '-' if no value was specified.
func (fs *FileSwitch) Get() any { return string(*fs) }

// String returns the path stored in the flag,
// or '-' if no value was specified.
func (fs *FileSwitch) String() string {
	return string(*fs)
}

// IsBoolFlag marks this as a flag
// that doesn't require a value.
func (*FileSwitch) IsBoolFlag() bool {
	return true
}

// Set receives the value for this flag.
func (fs *FileSwitch) Set(v string) error {
	switch v {
	case "true":
		v = "-"
	case "false":
		v = ""
	}
	*fs = FileSwitch(v)
	return nil
}

// enabled reports whether this flag was set with any value.
func (fs *FileSwitch) enabled() bool {
	return len(*fs) > 0
}

// Open returns the destination selected by this flag.
// The caller must close it when done.
//
//   - flag not passed: output is discarded
//   - flag passed without a value: output goes to fallback
//     (which is not closed)
//   - flag passed with a value: output goes to that file
func (fs *FileSwitch) Open(fallback io.Writer) (io.WriteCloser, error) {
	if !fs.enabled() {
		return nopCloser{io.Discard}, nil
	}

	switch *fs {
	case "-":
		return nopCloser{fallback}, nil
	default:
		f, err := os.Create(string(*fs))
		return f, errtrace.Wrap(err)
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
