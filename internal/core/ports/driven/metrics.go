package driven

import "github.com/custodia-labs/newsroom/internal/core/domain"

// Metrics records run and publish counters.
type Metrics interface {
	RoundSkipped(round int)
	EventNormalised(kind domain.EventKind)
	ArticleWritten(kind domain.EventKind)
	FilesCommitted(n int)
	PublishCompleted(ok bool)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) RoundSkipped(int)                 {}
func (NopMetrics) EventNormalised(domain.EventKind) {}
func (NopMetrics) ArticleWritten(domain.EventKind)  {}
func (NopMetrics) FilesCommitted(int)               {}
func (NopMetrics) PublishCompleted(bool)            {}

var _ Metrics = NopMetrics{}
