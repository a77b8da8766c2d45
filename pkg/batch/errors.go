package batch

import "errors"

var (
	// ErrInvalidBatchSize 表示批大小不是正数。
	ErrInvalidBatchSize = errors.New("batch: batch size must be positive")
	// ErrTooManyVariations 表示模板的变体数量超过 [WithMaxVariations] 设定的上限。
	ErrTooManyVariations = errors.New("batch: too many variations")
)
