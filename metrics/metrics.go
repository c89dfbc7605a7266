// Package metrics counts what the parsers see, for batch jobs that want to
// report on a mailbox or an mbox file in Prometheus form.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/zostay/go-imapmsg/message"
)

const namespace = "imapmsg"

// Collector holds the parse metrics on its own registry.
type Collector struct {
	reg *prometheus.Registry

	Parsed          prometheus.Counter
	Failed          *prometheus.CounterVec
	Attachments     prometheus.Counter
	AttachmentBytes prometheus.Counter
	Parts           prometheus.Histogram
}

// New returns a collector with all metrics registered.
func New() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Collector{
		reg: reg,
		Parsed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "messages",
			Name:      "parsed_total",
			Help:      "Number of messages parsed successfully",
		}),
		Failed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "messages",
			Name:      "failed_total",
			Help:      "Number of messages that failed to parse by stage",
		}, []string{"stage"}),
		Attachments: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "attachments",
			Name:      "extracted_total",
			Help:      "Number of attachments extracted",
		}),
		AttachmentBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "attachments",
			Name:      "bytes_total",
			Help:      "Decoded size of all attachments extracted",
		}),
		Parts: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "messages",
			Name:      "parts",
			Help:      "Number of MIME parts per message",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),
	}
}

// Registry returns the registry the metrics live on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.reg
}

// Observe records the outcome of one parse.
func (c *Collector) Observe(m *message.Message, err error) {
	if err != nil {
		stage := "unknown"
		var perr *message.ParseError
		if errors.As(err, &perr) {
			stage = perr.Stage.String()
		}
		c.Failed.WithLabelValues(stage).Inc()
		return
	}

	c.Parsed.Inc()
	c.Parts.Observe(float64(m.Structure().Len()))
	for _, a := range m.Attachments().All() {
		c.Attachments.Inc()
		c.AttachmentBytes.Add(float64(a.Size()))
	}
}

// WriteToTextfile writes the metrics in the text exposition format, for
// pickup by the node exporter textfile collector.
func (c *Collector) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.reg)
}
