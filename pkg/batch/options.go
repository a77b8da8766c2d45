package batch

import "runtime"

// options 批量展开选项。
type options struct {
	workers       int    // 并发展开的 worker 数量
	ordered       bool   // 是否按源行顺序写出
	maxVariations uint64 // 单个模板允许的最大变体数，0 表示不限制
}

// Option 批量展开选项函数。
type Option func(*options)

func newOptions(opts ...Option) options {
	o := options{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	return o
}

// WithWorkers 设置并发展开的 worker 数量。
//
// n <= 0 时使用 runtime.GOMAXPROCS(0)。
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithOrdered 设置是否按源行顺序写出结果。
//
// 默认按完成顺序写出，多模板输入时顺序不确定。
func WithOrdered(ordered bool) Option {
	return func(o *options) {
		o.ordered = ordered
	}
}

// WithMaxVariations 限制单个模板的变体数量。
//
// 展开前通过 vargen.Count 评估，超出上限时返回 [ErrTooManyVariations]。
// n 为 0 表示不限制。
func WithMaxVariations(n uint64) Option {
	return func(o *options) {
		o.maxVariations = n
	}
}
