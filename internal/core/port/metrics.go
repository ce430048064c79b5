package port

// MetricsRecorder counts domain outcomes.
type MetricsRecorder interface {
	AccountRegistered(reregistered bool)
	VerificationAttempt(outcome string)
	MessageReceived()
	MessageRejected(reason string)
	MessageDeleted()
	SuggestionRequested(outcome string)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) AccountRegistered(bool)     {}
func (NopMetrics) VerificationAttempt(string) {}
func (NopMetrics) MessageReceived()           {}
func (NopMetrics) MessageRejected(string)     {}
func (NopMetrics) MessageDeleted()            {}
func (NopMetrics) SuggestionRequested(string) {}
