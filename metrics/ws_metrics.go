package metrics

// Recorder records one WebSocket session's metrics under a fixed
// venue/topic/market label set, so wsengine.Session doesn't have to
// repeat those labels at every call site.
type Recorder struct {
	Venue, Topic, Market string
}

func NewRecorder(venue, topic, market string) *Recorder {
	return &Recorder{Venue: venue, Topic: topic, Market: market}
}

func (r *Recorder) RecordConnection(success bool) {
	status := "success"
	if !success {
		status = "failed"
	}
	WSConnectionsTotal.WithLabelValues(r.Venue, r.Topic, r.Market, status).Inc()
	if success {
		WSActiveConnections.WithLabelValues(r.Venue, r.Topic, r.Market).Inc()
	}
}

func (r *Recorder) RecordDisconnect() {
	WSActiveConnections.WithLabelValues(r.Venue, r.Topic, r.Market).Dec()
}

func (r *Recorder) RecordReconnect() {
	WSReconnectsTotal.WithLabelValues(r.Venue, r.Topic, r.Market).Inc()
}

func (r *Recorder) RecordMessage() {
	WSMessagesTotal.WithLabelValues(r.Venue, r.Topic, r.Market).Inc()
}

func (r *Recorder) RecordQueueOverflow() {
	WSQueueOverflowTotal.WithLabelValues(r.Venue, r.Topic, r.Market).Inc()
}
