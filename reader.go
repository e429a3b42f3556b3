package splitrand

import "io"

// NewReader adapts a Source to an io.Reader producing its unbounded
// raw byte stream. Every Read fills the whole buffer and never
// returns an error; this is the surface consumed by external
// statistical test suites.
func NewReader(src Source) io.Reader {
	return reader{src}
}

type reader struct {
	src Source
}

func (r reader) Read(p []byte) (int, error) {
	r.src.Fill(p)
	return len(p), nil
}
