package utils

// Channels feeding the prometheus collectors in src-server/metric. Buffered
// and drained with non-blocking sends so a slow collector never stalls the
// store.
type MetricChans struct {
	// mutation op name ("add_event", "update_event", ...)
	StoreMutation chan string
	// latency of a local database write in microseconds
	DatabaseWrite chan float64
}

func NewMetricChans() MetricChans {
	return MetricChans{
		StoreMutation: make(chan string, 64),
		DatabaseWrite: make(chan float64, 64),
	}
}

// ReportStoreMutation records a store mutation without ever blocking.
func (m MetricChans) ReportStoreMutation(op string) {
	select {
	case m.StoreMutation <- op:
	default:
	}
}

// ReportDatabaseWrite records a local persistence write latency without ever
// blocking.
func (m MetricChans) ReportDatabaseWrite(latencyMicrosec float64) {
	select {
	case m.DatabaseWrite <- latencyMicrosec:
	default:
	}
}
