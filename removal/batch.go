package removal

import "github.com/ThatsRight-ItsTJ/convec-api/pixel"

// BatchResult reports the outcome for one batch item. Exactly one of Buffer
// and Err is set.
type BatchResult struct {
	Buffer *pixel.Buffer
	Err    error
}

// RemoveBatch applies one option set to each buffer independently. Items are
// processed sequentially in input order; one failure never aborts the rest,
// and the result slice always has one entry per input.
func RemoveBatch(bufs []*pixel.Buffer, opts Options) []BatchResult {
	results := make([]BatchResult, len(bufs))
	for i, buf := range bufs {
		out, err := Apply(buf, opts)
		if err != nil {
			results[i] = BatchResult{Err: err}
			continue
		}
		results[i] = BatchResult{Buffer: out}
	}
	return results
}
