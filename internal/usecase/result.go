package usecase

// ResultStatus tells callers whether an aggregated result is complete.
type ResultStatus string

const (
	ResultOK          ResultStatus = "ok"
	ResultPartial     ResultStatus = "partial"
	ResultUnavailable ResultStatus = "unavailable"
)

// Result is the outcome of a scan over several upstream sources.
// Total is the deduplicated count before any truncation.
type Result[T any] struct {
	Status        ResultStatus
	Items         []T
	FailedSources []string
	Total         int
}

func (r Result[T]) Unavailable() bool {
	return r.Status == ResultUnavailable
}

// FailedSourceList never returns nil so it always encodes as a JSON array.
func (r Result[T]) FailedSourceList() []string {
	if r.FailedSources == nil {
		return []string{}
	}
	return r.FailedSources
}

func statusFor(sources, failed int) ResultStatus {
	switch {
	case sources > 0 && failed >= sources:
		return ResultUnavailable
	case failed > 0:
		return ResultPartial
	default:
		return ResultOK
	}
}
