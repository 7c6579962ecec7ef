// Package metrics tracks domain counters and exposes them both as a
// JSON snapshot and through a Prometheus registry.
package metrics

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	startTime time.Time

	dosesAdded   atomic.Int64
	dosesDeleted atomic.Int64

	statusCommits      atomic.Int64
	statusCommitErrors atomic.Int64
	statusesWritten    atomic.Int64

	appointmentsBooked    atomic.Int64
	appointmentsCancelled atomic.Int64

	loginsSuccess atomic.Int64
	loginsFailed  atomic.Int64

	remindersSent   atomic.Int64
	remindersFailed atomic.Int64

	httpRequests atomic.Int64

	registry *prometheus.Registry

	promDosesAdded        prometheus.Counter
	promDosesDeleted      prometheus.Counter
	promStatusCommits     *prometheus.CounterVec
	promStatusesWritten   prometheus.Counter
	promAppointments      *prometheus.CounterVec
	promLogins            *prometheus.CounterVec
	promReminders         *prometheus.CounterVec
	promHTTPRequests      *prometheus.CounterVec
	promHTTPDuration      *prometheus.HistogramVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

func Default() *Metrics {
	once.Do(func() {
		defaultMetrics = New()
	})
	return defaultMetrics
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		startTime: time.Now(),
		registry:  registry,

		promDosesAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "healthmate_doses_added_total",
			Help: "Medication doses added to the schedule",
		}),
		promDosesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "healthmate_doses_deleted_total",
			Help: "Medication doses removed from the schedule",
		}),
		promStatusCommits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthmate_status_commits_total",
			Help: "Batch status commits by result",
		}, []string{"result"}),
		promStatusesWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "healthmate_statuses_written_total",
			Help: "Individual dose status updates persisted",
		}),
		promAppointments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthmate_appointments_total",
			Help: "Appointment operations by action",
		}, []string{"action"}),
		promLogins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthmate_logins_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		promReminders: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthmate_reminders_total",
			Help: "Dose reminders by result",
		}, []string{"result"}),
		promHTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "healthmate_http_requests_total",
			Help: "HTTP requests by method and status",
		}, []string{"method", "status"}),
		promHTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "healthmate_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

func (m *Metrics) RecordDoseAdded() {
	m.dosesAdded.Add(1)
	m.promDosesAdded.Inc()
}

func (m *Metrics) RecordDoseDeleted() {
	m.dosesDeleted.Add(1)
	m.promDosesDeleted.Inc()
}

func (m *Metrics) RecordStatusCommit(written int, success bool) {
	m.statusCommits.Add(1)
	m.statusesWritten.Add(int64(written))
	m.promStatusesWritten.Add(float64(written))
	if success {
		m.promStatusCommits.WithLabelValues("ok").Inc()
	} else {
		m.statusCommitErrors.Add(1)
		m.promStatusCommits.WithLabelValues("error").Inc()
	}
}

func (m *Metrics) RecordAppointmentBooked() {
	m.appointmentsBooked.Add(1)
	m.promAppointments.WithLabelValues("booked").Inc()
}

func (m *Metrics) RecordAppointmentCancelled() {
	m.appointmentsCancelled.Add(1)
	m.promAppointments.WithLabelValues("cancelled").Inc()
}

func (m *Metrics) RecordLogin(success bool) {
	if success {
		m.loginsSuccess.Add(1)
		m.promLogins.WithLabelValues("ok").Inc()
	} else {
		m.loginsFailed.Add(1)
		m.promLogins.WithLabelValues("error").Inc()
	}
}

func (m *Metrics) RecordReminder(success bool) {
	if success {
		m.remindersSent.Add(1)
		m.promReminders.WithLabelValues("ok").Inc()
	} else {
		m.remindersFailed.Add(1)
		m.promReminders.WithLabelValues("error").Inc()
	}
}

func (m *Metrics) RecordHTTPRequest(method, status string, duration time.Duration) {
	m.httpRequests.Add(1)
	m.promHTTPRequests.WithLabelValues(method, status).Inc()
	m.promHTTPDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// Handler serves the Prometheus text exposition for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type Snapshot struct {
	Uptime                time.Duration `json:"uptime"`
	DosesAdded            int64         `json:"doses_added"`
	DosesDeleted          int64         `json:"doses_deleted"`
	StatusCommits         int64         `json:"status_commits"`
	StatusCommitErrors    int64         `json:"status_commit_errors"`
	StatusesWritten       int64         `json:"statuses_written"`
	AppointmentsBooked    int64         `json:"appointments_booked"`
	AppointmentsCancelled int64         `json:"appointments_cancelled"`
	LoginsSuccess         int64         `json:"logins_success"`
	LoginsFailed          int64         `json:"logins_failed"`
	RemindersSent         int64         `json:"reminders_sent"`
	RemindersFailed       int64         `json:"reminders_failed"`
	HTTPRequests          int64         `json:"http_requests"`
}

func (m *Metrics) Snapshot() *Snapshot {
	return &Snapshot{
		Uptime:                time.Since(m.startTime),
		DosesAdded:            m.dosesAdded.Load(),
		DosesDeleted:          m.dosesDeleted.Load(),
		StatusCommits:         m.statusCommits.Load(),
		StatusCommitErrors:    m.statusCommitErrors.Load(),
		StatusesWritten:       m.statusesWritten.Load(),
		AppointmentsBooked:    m.appointmentsBooked.Load(),
		AppointmentsCancelled: m.appointmentsCancelled.Load(),
		LoginsSuccess:         m.loginsSuccess.Load(),
		LoginsFailed:          m.loginsFailed.Load(),
		RemindersSent:         m.remindersSent.Load(),
		RemindersFailed:       m.remindersFailed.Load(),
		HTTPRequests:          m.httpRequests.Load(),
	}
}
