package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
)

// Metrics holds process-local counters exported in the Prometheus text format.
type Metrics struct {
	webhooksReceived atomic.Int64
	webhooksIndexed  atomic.Int64

	mu            sync.Mutex
	verifications map[verificationKey]int64
}

type verificationKey struct {
	product string
	status  int
}

func NewMetrics() *Metrics {
	return &Metrics{verifications: make(map[verificationKey]int64)}
}

func (m *Metrics) WebhookReceived() { m.webhooksReceived.Add(1) }

func (m *Metrics) WebhookIndexed() { m.webhooksIndexed.Add(1) }

func (m *Metrics) Verification(product string, status int) {
	m.mu.Lock()
	m.verifications[verificationKey{product, status}]++
	m.mu.Unlock()
}

type MetricsHandler struct {
	metrics *Metrics
}

func NewMetricsHandler(metrics *Metrics) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

func (h *MetricsHandler) Export(w http.ResponseWriter, r *http.Request) {
	m := h.metrics

	m.mu.Lock()
	keys := make([]verificationKey, 0, len(m.verifications))
	for k := range m.verifications {
		keys = append(keys, k)
	}
	counts := make(map[verificationKey]int64, len(keys))
	for _, k := range keys {
		counts[k] = m.verifications[k]
	}
	m.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].product != keys[j].product {
			return keys[i].product < keys[j].product
		}
		return keys[i].status < keys[j].status
	})

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "# HELP idvdemo_up Is the server up\n")
	fmt.Fprintf(w, "# TYPE idvdemo_up gauge\n")
	fmt.Fprintf(w, "idvdemo_up 1\n")

	fmt.Fprintf(w, "# HELP idvdemo_webhooks_received_total Vendor callbacks accepted on /webhook-callback\n")
	fmt.Fprintf(w, "# TYPE idvdemo_webhooks_received_total counter\n")
	fmt.Fprintf(w, "idvdemo_webhooks_received_total %d\n", m.webhooksReceived.Load())

	fmt.Fprintf(w, "# HELP idvdemo_webhooks_indexed_total Payloads indexed by job id on /webhook\n")
	fmt.Fprintf(w, "# TYPE idvdemo_webhooks_indexed_total counter\n")
	fmt.Fprintf(w, "idvdemo_webhooks_indexed_total %d\n", m.webhooksIndexed.Load())

	fmt.Fprintf(w, "# HELP idvdemo_verification_requests_total Proxied verification requests by product and response status\n")
	fmt.Fprintf(w, "# TYPE idvdemo_verification_requests_total counter\n")
	for _, k := range keys {
		fmt.Fprintf(w, "idvdemo_verification_requests_total{product=%q,status=\"%d\"} %d\n", k.product, k.status, counts[k])
	}
}
