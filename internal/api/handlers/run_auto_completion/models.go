package run_auto_completion

import (
	runAutoCompletionUC "github.com/dkarlovs/SBM-ScheduleService/internal/usecase/run_auto_completion"
)

// RunResponse итог принудительного прохода авто-завершения
type RunResponse struct {
	ProcessedCount int     `json:"processed_count"`
	FailedCount    int     `json:"failed_count"`
	ProcessedIDs   []int64 `json:"processed_ids"`
	FailedIDs      []int64 `json:"failed_ids,omitempty"`
}

// FromUseCaseResult преобразует результат use case в HTTP-ответ
func FromUseCaseResult(result *runAutoCompletionUC.Result) *RunResponse {
	processedIDs := result.ProcessedIDs
	if processedIDs == nil {
		processedIDs = []int64{}
	}
	return &RunResponse{
		ProcessedCount: result.ProcessedCount,
		FailedCount:    result.FailedCount,
		ProcessedIDs:   processedIDs,
		FailedIDs:      result.FailedIDs,
	}
}
