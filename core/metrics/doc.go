package metrics

// Package metrics defines interfaces and implementations for collecting
// pipeline metrics. Sinks like PromSink and InfluxSink record readings,
// predictions and schedules and can be combined with NewMultiSink. The
// factory helpers return a MultiSink automatically when multiple sinks are
// configured.
