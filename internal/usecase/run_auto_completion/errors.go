package run_auto_completion

import "errors"

var (
	// ErrListCandidates возвращается, когда не удалось получить кандидатов
	ErrListCandidates = errors.New("run_auto_completion: failed to list candidates")
)
